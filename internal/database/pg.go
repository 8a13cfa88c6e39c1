package database

import (
	"errors"

	"github.com/facturio/compta-service/internal/models"
	"github.com/lib/pq"
)

// Noms des contraintes d'unicité posées par InitSchema
const (
	constraintQuoteNumber    = "quotes_number_key"
	constraintInvoiceNumber  = "invoices_number_key"
	constraintInvoiceQuoteID = "invoices_quote_id_key"
)

// Noms des clés étrangères générés par PostgreSQL pour les références posées
// par InitSchema
const (
	fkInvoiceQuote  = "invoices_quote_id_fkey"
	fkInvoiceClient = "invoices_client_id_fkey"
	fkQuoteClient   = "quotes_client_id_fkey"
)

// Classes d'erreur PostgreSQL
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapUniqueViolation traduit une violation de contrainte d'unicité en
// Conflict. La contrainte du stockage est le garde-fou faisant autorité ;
// les pré-vérifications applicatives ne sont qu'un rejet rapide.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != pgUniqueViolation {
		return err
	}

	switch pqErr.Constraint {
	case constraintQuoteNumber:
		return models.NewConflictError("Un devis avec ce numéro existe déjà.")
	case constraintInvoiceNumber:
		return models.NewConflictError("Une facture avec ce numéro existe déjà.")
	case constraintInvoiceQuoteID:
		return models.NewConflictError("Une facture existe déjà pour ce devis.")
	}
	return models.NewConflictError("Cette opération viole une contrainte d'unicité.")
}

// mapForeignKeyViolation traduit une violation de clé étrangère en NotFound :
// l'entité référencée n'existe pas.
func mapForeignKeyViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != pgForeignKeyViolation {
		return err
	}

	switch pqErr.Constraint {
	case fkInvoiceQuote:
		return models.NewNotFoundError("Devis non trouvé.")
	case fkInvoiceClient, fkQuoteClient:
		return models.NewNotFoundError("Client non trouvé.")
	}
	return err
}

// mapConstraintViolation combine les traductions d'unicité et de clé
// étrangère pour les chemins d'écriture
func mapConstraintViolation(err error) error {
	if mapped := mapUniqueViolation(err); mapped != err {
		return mapped
	}
	return mapForeignKeyViolation(err)
}
