package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/go-hebergement/internal/models"
	"github.com/diewo77/go-hebergement/internal/templating"
)

type permissionSeed struct {
	ResourceType string
	Action       string
	Description  string
}

var permissionSeeds = []permissionSeed{
	{"*", "*", "Accès complet"},
	{"template", "*", "Toutes les actions sur les modèles"},
	{"template", "list", "Lister les modèles"},
	{"template", "view", "Consulter un modèle"},
	{"template", "create", "Créer un modèle"},
	{"template", "update", "Modifier un modèle"},
	{"template", "duplicate", "Dupliquer un modèle"},
	{"template", "activate", "Activer ou désactiver un modèle"},
	{"document", "*", "Toutes les actions sur les documents"},
	{"document", "generate", "Générer un document"},
	{"document", "view", "Prévisualiser un document"},
	{"reservation", "view", "Consulter une réservation"},
	{"profile", "*", "Gestion des profils"},
	{"profile", "list", "Lister les profils"},
	{"profile", "update", "Attribuer un profil"},
}

type profileSeed struct {
	Name        string
	Description string
	Permissions []string
}

var profileSeeds = []profileSeed{
	{"admin", "Administrateur", []string{"*:*"}},
	{"operateur", "Génère les documents et gère ses modèles", []string{
		"template:list", "template:view", "template:create", "template:update",
		"template:duplicate", "template:activate", "document:*", "reservation:view",
	}},
	{"lecteur", "Consultation seule", []string{
		"template:list", "template:view", "document:view", "reservation:view",
	}},
}

// Seed creates permissions, system profiles and builtin templates. It is
// idempotent.
func Seed(conn *gorm.DB) error {
	if err := SeedProfiles(conn); err != nil {
		return err
	}
	return SeedTemplates(conn)
}

// SeedPermissions creates the permission catalogue.
func SeedPermissions(conn *gorm.DB) error {
	for _, p := range permissionSeeds {
		perm := models.Permission{ResourceType: p.ResourceType, Action: p.Action, Description: p.Description}
		err := conn.Where("resource_type = ? AND action = ?", p.ResourceType, p.Action).
			FirstOrCreate(&perm).Error
		if err != nil {
			return fmt.Errorf("seed permission %s:%s: %w", p.ResourceType, p.Action, err)
		}
	}
	return nil
}

// SeedProfiles creates the system profiles and resets their permissions.
func SeedProfiles(conn *gorm.DB) error {
	if err := SeedPermissions(conn); err != nil {
		return err
	}
	for _, p := range profileSeeds {
		var profile models.Profile
		err := conn.Where("name = ?", p.Name).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profile = models.Profile{Name: p.Name, Description: p.Description, IsSystem: true}
			err = conn.Create(&profile).Error
		}
		if err != nil {
			return fmt.Errorf("seed profile %s: %w", p.Name, err)
		}

		var perms []models.Permission
		for _, code := range p.Permissions {
			resource, action, _ := strings.Cut(code, ":")
			var perm models.Permission
			if err := conn.Where("resource_type = ? AND action = ?", resource, action).First(&perm).Error; err == nil {
				perms = append(perms, perm)
			}
		}
		if err := conn.Model(&profile).Association("Permissions").Replace(perms); err != nil {
			return fmt.Errorf("seed profile %s permissions: %w", p.Name, err)
		}
	}
	return nil
}

// SeedTemplates stores the builtin templates whose code is not yet taken.
// Stored copies are never overwritten.
func SeedTemplates(conn *gorm.DB) error {
	builtins, err := templating.LoadBuiltin()
	if err != nil {
		return err
	}
	for _, tpl := range builtins {
		var count int64
		if err := conn.Model(&models.DocumentTemplate{}).Where("code = ?", tpl.Code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		rec := models.NewDocumentTemplate(tpl)
		if err := conn.Create(&rec).Error; err != nil {
			return fmt.Errorf("seed template %s: %w", tpl.Code, err)
		}
	}
	return nil
}

var demoUsers = []struct{ email, name, profile string }{
	{"admin@hebergement.example", "Administratrice", "admin"},
	{"operateur@hebergement.example", "Opérateur", "operateur"},
	{"lecteur@hebergement.example", "Lecteur", "lecteur"},
}

// SeedDemo adds demo users, a few hotels, operators and reservations for
// local use. It expects the system profiles and does nothing once any
// hotel exists.
func SeedDemo(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.Hotel{}).Count(&count).Error; err != nil || count > 0 {
		return err
	}
	return conn.Transaction(func(tx *gorm.DB) error {
		central := models.Hotel{
			Name:    "Hôtel Central",
			Address: "12 rue de la Gare, 75010 Paris",
			Phone:   "01 40 00 00 01",
			Email:   "accueil@hotel-central.fr",
			Rooms: []models.Room{
				{Number: "12", Kind: "Double", Capacity: 2},
				{Number: "14", Kind: "Familiale", Capacity: 4},
			},
		}
		parc := models.Hotel{Name: "Hôtel du Parc", Address: "3 avenue du Parc, 93100 Montreuil", Phone: "01 48 00 00 02"}
		if err := tx.Create(&central).Error; err != nil {
			return err
		}
		if err := tx.Create(&parc).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.HotelProfile{
			HotelID: central.ID, Siret: "512 345 678 00014", Director: "Claire Fontaine",
			DirectorContact: "c.fontaine@hotel-central.fr", Capacity: 48,
		}).Error; err != nil {
			return err
		}

		samu := models.Operator{
			Organization: "Samusocial de Paris",
			ContactName:  "Service hébergement",
			Address:      "35 avenue Courteline, 75012 Paris",
			Phone:        "01 43 44 00 00",
			Email:        "hebergement@samusocial.example",
		}
		if err := tx.Create(&samu).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.OrganizationProfile{
			OperatorID: samu.ID, Siret: "423 456 789 00021", Agrement: "AGR-75-2019-001",
			Manager: "Marc Lefèvre", Telephone: "01 43 44 00 00",
		}).Error; err != nil {
			return err
		}

		for _, u := range demoUsers {
			var profile models.Profile
			if err := tx.Where("name = ?", u.profile).First(&profile).Error; err != nil {
				return fmt.Errorf("demo user %s: %w", u.email, err)
			}
			user := models.User{Email: u.email, Name: u.name, ProfileID: &profile.ID}
			if err := tx.Where("email = ?", u.email).FirstOrCreate(&user).Error; err != nil {
				return err
			}
		}

		arrival := time.Now().Truncate(24 * time.Hour)
		reservations := []models.Reservation{
			{
				GuestName: "Jean Dupont", ArrivalDate: arrival, DepartureDate: arrival.AddDate(0, 0, 4),
				NightlyPrice: 45, Prescriber: "SIAO 75", Adults: 1,
				HotelID: &central.ID, OperatorID: &samu.ID, RoomID: &central.Rooms[0].ID,
			},
			{
				GuestName: "Famille Demir", ArrivalDate: arrival, DepartureDate: arrival.AddDate(0, 0, 7),
				NightlyPrice: 82.5, Prescriber: "SIAO 93", FamilyStatus: "Marié(e)", Adults: 2, Children: 2,
				HotelID: &central.ID, OperatorID: &samu.ID, RoomID: &central.Rooms[1].ID,
			},
			{
				GuestName: "Awa Diallo", ArrivalDate: arrival, DepartureDate: arrival.AddDate(0, 0, 2),
				NightlyPrice: 39, HotelID: &parc.ID,
			},
		}
		return tx.Create(&reservations).Error
	})
}
