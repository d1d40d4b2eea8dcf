// Package docs Semaine de l'Industrie API.
//
// API de la plateforme Semaine de l'Industrie. Les entreprises publient
// des créneaux de visite de leurs sites industriels, les visiteurs
// (élèves, classes, curieux) réservent des places.
//
// Fonctionnalités principales :
// - Annuaire public des entreprises approuvées (thème, ville, disponibilité)
// - Demandes d'accès entreprise et workflow d'approbation administrateur
// - Créneaux de visite avec capacité et validation manuelle optionnelle
// - Réservations individuelles et de groupe avec fenêtre d'annulation
// - Tableaux de bord entreprise et visiteur, statistiques plateforme
// - Export CSV au format DataGouv avec mapping configurable
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//	- text/csv
//
//	Security:
//	- api_key:
//
//	SecurityDefinitions:
//	api_key:
//	     type: apiKey
//	     name: Authorization
//	     in: header
//
// swagger:meta
package docs
