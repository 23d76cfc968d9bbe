package mapping

// Sample tables behind StaticSource.
//
// Known defect: sampleIssuer and sampleOccupants are fixed literals. Every
// invoice carries the same issuer identifiers and every voucher lists
// occupants that are not taken from the reservation. Mapper.SyntheticKeys
// names the affected dictionary keys so callers can surface it.

var sampleHotels = []namedHotel{
	{"Hôtel Central", HotelProfile{Siret: "512 345 678 00014", Director: "Claire Fontaine", DirectorContact: "01 42 00 11 22", Capacity: 48}},
	{"Hôtel du Parc", HotelProfile{Siret: "498 765 432 00027", Director: "Marc Leroy", DirectorContact: "01 43 55 66 77", Capacity: 32}},
	{"Résidence Les Tilleuls", HotelProfile{Siret: "823 456 789 00031", Director: "Nadia Benali", DirectorContact: "01 48 22 33 44", Capacity: 60}},
	{"Hôtel de la Gare", HotelProfile{Siret: "401 234 567 00019", Director: "Paul Morel", DirectorContact: "01 40 12 34 56", Capacity: 25}},
	{"Le Relais Saint-Martin", HotelProfile{Siret: "789 012 345 00022", Director: "Sophie Girard", DirectorContact: "01 44 78 90 12", Capacity: 40}},
}

var sampleOrganizations = []namedOrganization{
	{"Samusocial de Paris", OrganizationProfile{Siret: "180 092 025 00014", Agrement: "AGR-75-2019-001", Manager: "Direction de l'hébergement", Telephone: "01 43 44 00 00"}},
	{"Croix-Rouge française", OrganizationProfile{Siret: "775 672 272 00016", Agrement: "AGR-75-2017-114", Manager: "Pôle urgence sociale", Telephone: "01 44 43 11 00"}},
	{"France terre d'asile", OrganizationProfile{Siret: "784 547 499 00034", Agrement: "AGR-75-2018-052", Manager: "Service d'accueil", Telephone: "01 53 04 39 99"}},
	{"Emmaüs Solidarité", OrganizationProfile{Siret: "303 364 763 00087", Agrement: "AGR-75-2020-009", Manager: "Coordination hébergement", Telephone: "01 44 82 77 20"}},
}

var sampleOccupants = [][]string{
	{"Amina Diallo"},
	{"Karim Haddad", "Leïla Haddad"},
	{"Sofia Petrova", "Ivan Petrov", "Mila Petrova"},
	{"Moussa Traoré"},
	{"Fatou Camara", "Aïssata Camara"},
	{"Yusuf Demir", "Elif Demir", "Can Demir", "Ada Demir"},
	{"Nour El Amrani"},
	{"Ion Popescu", "Maria Popescu"},
	{"Grace Mbemba", "Jordan Mbemba", "Océane Mbemba"},
	{"Ahmed Benslimane"},
}

var sampleIssuer = Issuer{
	Name:         "Plateforme Hébergement Solidaire",
	Address:      "18 rue des Archives 75004 Paris",
	Siret:        "852 741 963 00018",
	VATNumber:    "FR 27 852741963",
	Agrement:     "ESUS-75-2021-0042",
	IBAN:         "FR76 3000 4000 0500 0012 3456 789",
	BIC:          "BNPAFRPPXXX",
	PaymentTerms: "Paiement à 30 jours à réception de facture",
}
