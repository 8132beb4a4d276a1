package cardvault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cardvault/cardvault/scryfall"
)

// stubCatalog resolves names from a fixed map.
type stubCatalog map[string]scryfall.Card

func (s stubCatalog) Resolve(name string) (scryfall.Card, error) {
	card, ok := s[name]
	if !ok {
		return scryfall.Card{}, fmt.Errorf("no catalog match for %q", name)
	}
	return card, nil
}

func TestRegisterNewCards(t *testing.T) {
	r := testRegistry(t)
	r.Vault.Append(
		Card{PID: "p00004", Name: "Sol Ring"}, // already registered
		Card{Name: "brainstorm", Finish: Foil},
		Card{Name: "ponder", Language: "de"},
	)
	r.Archive.Append(Card{PID: "p00009", Name: "Dark Ritual"})

	catalog := stubCatalog{
		"brainstorm": {
			ID: "11bf83bb-c95b-4b4f-9a56-ce7a1816307a", Name: "Brainstorm",
			SetName: "Ice Age", Lang: "en",
			Prices: scryfall.Prices{USDFoil: decp("4"), EURFoil: decp("3.5")},
		},
		"ponder": {
			ID: "47c8e301-13a7-467c-bcc6-3c4e82e0a1f2", Name: "Ponder",
			SetName: "Lorwyn", Lang: "en",
			Prices: scryfall.Prices{USD: decp("2")},
		},
	}

	minted, err := r.RegisterNewCards(catalog, FixedRate(1.25))
	if err != nil {
		t.Fatal(err)
	}
	// minting continues after the archive's highest pid
	want := []string{"p00010", "p00011"}
	if len(minted) != 2 || minted[0] != want[0] || minted[1] != want[1] {
		t.Fatalf("minted = %v, want %v", minted, want)
	}

	got := r.Vault.At(1)
	if got.PID != "p00010" || got.Name != "Brainstorm" || got.SetName != "Ice Age" {
		t.Errorf("row 1 mismatch: %+v", got)
	}
	if got.Language != "en" {
		t.Errorf("language = %q, want back-filled en", got.Language)
	}
	if got.PriceUSD.String() != "4" || got.PriceEUR.String() != "3.5" {
		t.Errorf("foil prices = %s / %s", got.PriceUSD, got.PriceEUR)
	}

	got = r.Vault.At(2)
	if got.PID != "p00011" {
		t.Errorf("row 2 pid = %q", got.PID)
	}
	if got.Language != "de" {
		t.Errorf("language = %q, want the hand-entered de kept", got.Language)
	}
	// eur derived through the 1.25 rate
	if got.PriceEUR.String() != "1.6" {
		t.Errorf("derived eur = %s, want 1.6", got.PriceEUR)
	}

	// untouched rows
	if r.Vault.At(0).PID != "p00004" {
		t.Errorf("registered row modified: %+v", r.Vault.At(0))
	}
}

func TestRegisterNewCardsNothingPending(t *testing.T) {
	r := testRegistry(t)
	r.Vault.Append(Card{PID: "p00001", Name: "Sol Ring"})

	minted, err := r.RegisterNewCards(stubCatalog{}, FixedRate(1.25))
	if err != nil {
		t.Fatal(err)
	}
	if minted != nil {
		t.Errorf("minted = %v, want nil", minted)
	}
}

func TestRegisterNewCardsAllOrNothing(t *testing.T) {
	r := testRegistry(t)
	r.Vault.Append(
		Card{Name: "brainstorm"},
		Card{Name: "unknown card"},
	)
	catalog := stubCatalog{
		"brainstorm": {ID: "11bf83bb-c95b-4b4f-9a56-ce7a1816307a", Name: "Brainstorm"},
	}

	_, err := r.RegisterNewCards(catalog, FixedRate(1.25))
	if err == nil {
		t.Fatal("expected an error for the unresolvable name")
	}
	for i, card := range r.Vault.Cards() {
		if card.Registered() {
			t.Errorf("row %d was mutated despite the failure: %+v", i, card)
		}
	}
}

// failingRates always errors, standing in for a broken network.
type failingRates struct{}

func (failingRates) Rate() (Rate, error) { return Rate{}, errors.New("network down") }

func TestRegisterNewCardsRateFailureAborts(t *testing.T) {
	r := testRegistry(t)
	r.Vault.Append(Card{Name: "brainstorm"})

	_, err := r.RegisterNewCards(stubCatalog{}, failingRates{})
	if err == nil {
		t.Fatal("expected a rate error")
	}
	if r.Vault.At(0).Registered() {
		t.Error("row mutated despite the rate failure")
	}
}
