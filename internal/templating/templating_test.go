package templating

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.March, 7, 15, 4, 0, 0, time.UTC)

func builtin(t *testing.T, code string) Template {
	t.Helper()
	all, err := LoadBuiltin()
	require.NoError(t, err)
	for _, tpl := range all {
		if tpl.Code == code {
			return tpl
		}
	}
	t.Fatalf("builtin %q not found", code)
	return Template{}
}

func TestSubstitute_Confirmation(t *testing.T) {
	got := Substitute("Bon de confirmation pour {{usager}} à l'hôtel {{hotel}}",
		Dictionary{"usager": "Jean Dupont", "hotel": "Hôtel Central"}, fixedNow)
	assert.Equal(t, "Bon de confirmation pour Jean Dupont à l'hôtel Hôtel Central", got)
}

func TestSubstitute_AbsentAndCaseSensitive(t *testing.T) {
	got := Substitute("[{{nom}}] [{{Nom}}] [{{ nom }}]", Dictionary{"nom": "x"}, fixedNow)
	assert.Equal(t, "[x] [] [{{ nom }}]", got)
}

func TestSubstitute_DateTokens(t *testing.T) {
	got := Substitute("{{date}} / {{date_du_jour}}", Dictionary{}, fixedNow)
	assert.Equal(t, "07/03/2025 / 07/03/2025", got)

	got = Substitute("{{date}}", Dictionary{"date": "01/01/2024"}, fixedNow)
	assert.Equal(t, "01/01/2024", got)
}

func TestSubstitute_ValuesAreNotRescanned(t *testing.T) {
	got := Substitute("{{a}}", Dictionary{"a": "{{b}}", "b": "nope"}, fixedNow)
	assert.Equal(t, "{{b}}", got)
}

func TestSubstitute_Idempotent(t *testing.T) {
	tpl := builtin(t, "bon_reservation")
	d := Dictionary{"usager": "Jean Dupont", "hotel": "Hôtel Central", "numero_reservation": "5"}
	assert.Equal(t, Substitute(tpl.Body, d, fixedNow), Substitute(tpl.Body, d, fixedNow))
}

func TestSubstitute_DeclaredPlaceholdersAreReplaced(t *testing.T) {
	all, err := LoadBuiltin()
	require.NoError(t, err)
	for _, tpl := range all {
		d := Dictionary{}
		for _, v := range tpl.Variables {
			d[v.Name] = "valeur-" + v.Name
		}
		out := Substitute(tpl.Body, d, fixedNow)
		for _, v := range tpl.Variables {
			assert.NotContains(t, out, "{{"+v.Name+"}}", "template %s", tpl.Code)
		}
		assert.Empty(t, Placeholders(out), "template %s", tpl.Code)
	}
}

func TestMissing_InvoiceDeclarationOrder(t *testing.T) {
	tpl := builtin(t, "facture")
	require.Len(t, tpl.Variables, 16)
	for _, v := range tpl.Variables {
		require.True(t, v.Required, v.Name)
	}

	missing := Missing(tpl, Dictionary{"usager": "Jean Dupont", "prix_total": "120,00 €"})
	assert.Equal(t, []string{
		"numero_facture", "date_facture", "hotel", "adresse_hotel", "operateur",
		"adresse_operateur", "date_arrivee", "date_depart", "nombre_nuits", "prix_nuit",
		"montant_ht", "taux_tva", "montant_tva", "iban",
	}, missing)
}

func TestMissing_BlankCountsAsMissing(t *testing.T) {
	tpl := Template{Variables: []Variable{
		{Name: "a", Required: true},
		{Name: "b", Required: false},
		{Name: "c", Required: true},
	}}
	assert.Equal(t, []string{"a", "c"}, Missing(tpl, Dictionary{"a": "  \t", "c": ""}))
	assert.Empty(t, Missing(tpl, Dictionary{"a": "1", "c": "2"}))
	assert.Equal(t, []string{"b"}, Blank(tpl, Dictionary{"a": "1", "c": "2"}))
}

func TestCheck_UndeclaredPlaceholder(t *testing.T) {
	tpl := Template{
		Code: "x", Name: "X", Type: TypeTermination, Status: StatusActive, Format: FormatPDF,
		Body:      "{{usager}} {{inconnu}} {{date}}",
		Footer:    "{{autre}}",
		Variables: []Variable{{Name: "usager", Kind: KindText}, {Name: "inutile"}},
	}
	err := tpl.Check()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUndeclaredPlaceholder))
	assert.Equal(t, []string{"inconnu", "autre"}, tpl.Undeclared())
	assert.Equal(t, []string{"inutile"}, tpl.Unused())
}

func TestCheck_InvalidFields(t *testing.T) {
	tpl := Template{Code: "x", Name: "X", Type: "devis", Status: StatusActive, Format: FormatPDF,
		Variables: []Variable{{Name: "a"}, {Name: "a"}}}
	err := tpl.Check()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTemplate)
	assert.Contains(t, err.Error(), "devis")
	assert.Contains(t, err.Error(), "duplicate variable")
}

func TestLoadBuiltin(t *testing.T) {
	all, err := LoadBuiltin()
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []DocumentType{TypeInvoice, TypeBookingVoucher, TypeExtension, TypeTermination},
		[]DocumentType{all[0].Type, all[1].Type, all[2].Type, all[3].Type})
	for _, tpl := range all {
		assert.NoError(t, tpl.Check())
		assert.True(t, tpl.Active())
		assert.Equal(t, FormatPDF, tpl.Format)
	}
}

func TestRegistry_ListFilters(t *testing.T) {
	all, err := LoadBuiltin()
	require.NoError(t, err)
	reg, err := NewRegistry(all...)
	require.NoError(t, err)

	inactive := all[1].Clone()
	inactive.Code = "bon_reservation_ancien"
	inactive.Status = StatusInactive
	require.NoError(t, reg.Put(inactive))

	assert.Len(t, reg.List(Filter{}), 5)
	assert.Len(t, reg.List(Filter{Status: StatusActive}), 4)

	vouchers := reg.List(Filter{Type: TypeBookingVoucher})
	require.Len(t, vouchers, 2)
	assert.Equal(t, "bon_reservation", vouchers[0].Code)
	assert.Equal(t, "bon_reservation_ancien", vouchers[1].Code)

	got := reg.List(Filter{Status: StatusInactive, Type: TypeBookingVoucher})
	require.Len(t, got, 1)
	assert.Equal(t, "bon_reservation_ancien", got[0].Code)
}

func TestRegistry_PutReplacesInPlace(t *testing.T) {
	all, err := LoadBuiltin()
	require.NoError(t, err)
	reg, err := NewRegistry(all...)
	require.NoError(t, err)

	updated := all[0].Clone()
	updated.ID = 7
	updated.Name = "Facture v2"
	require.NoError(t, reg.Put(updated))

	list := reg.List(Filter{})
	assert.Equal(t, "Facture v2", list[0].Name)
	assert.Equal(t, 4, reg.Len())

	byID, err := reg.GetByID(7)
	require.NoError(t, err)
	assert.Equal(t, "facture", byID.Code)

	_, err = reg.Get("absent")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = reg.GetByID(0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_RejectsInconsistentTemplate(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)
	err = reg.Put(Template{Code: "x", Name: "X", Type: TypeInvoice, Status: StatusActive, Format: FormatPDF, Body: "{{y}}"})
	assert.ErrorIs(t, err, ErrUndeclaredPlaceholder)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	all, err := LoadBuiltin()
	require.NoError(t, err)
	reg, err := NewRegistry(all[0])
	require.NoError(t, err)

	got, err := reg.Get("facture")
	require.NoError(t, err)
	got.Variables[0].Name = "altered"

	again, err := reg.Get("facture")
	require.NoError(t, err)
	assert.Equal(t, "numero_facture", again.Variables[0].Name)
}

func TestSlugAndFold(t *testing.T) {
	assert.Equal(t, "hotel central", Fold("  Hôtel   CENTRAL "))
	assert.Equal(t, "facture-d-hebergement", Slug("Facture d'hébergement"))
	assert.Equal(t, "bon-de-confirmation-2025", Slug("Bon de confirmation (2025)"))
	assert.Equal(t, "", Slug("!!!"))
}

func TestDictionaryMerge(t *testing.T) {
	base := Dictionary{"a": "1", "b": "2"}
	got := base.Merge(map[string]string{"b": "edited", "c": "3", "a": ""})
	assert.Equal(t, Dictionary{"a": "1", "b": "edited", "c": "3"}, got)
	assert.Equal(t, "2", base["b"])
	assert.Equal(t, []string{"a", "b", "c"}, got.Keys())
}

func TestUncovered(t *testing.T) {
	tpl := Template{Variables: []Variable{{Name: "usager"}, {Name: "libre"}}}
	assert.Equal(t, []string{"libre"}, Uncovered(tpl, []string{"usager", "hotel"}))
}
