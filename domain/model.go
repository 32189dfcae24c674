package domain

import (
	"encoding/json"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
)

type Account struct {
	ID        string `bson:"_id" json:"id"`
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Email     string `bson:"email" json:"email"`
	Password  string `bson:"password" json:"password"`
}

// PublicAccount is the view handed back over the API, the password hash never
// leaves the store layer.
type PublicAccount struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (account *Account) Public() *PublicAccount {
	return &PublicAccount{
		ID:        account.ID,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
	}
}

type Accommodation struct {
	ID           string `bson:"_id" json:"id"`
	Name         string `bson:"name" json:"name"`
	Beschreibung string `bson:"beschreibung" json:"beschreibung"`
	Standort     string `bson:"standort" json:"standort"`
}

type Reservation struct {
	ID            string  `bson:"_id" json:"id"`
	OwnerID       string  `bson:"ownerId" json:"ownerId"`
	Vorname       string  `bson:"vorname" json:"vorname"`
	Nachname      string  `bson:"nachname" json:"nachname"`
	Ausweisnummer string  `bson:"ausweisnummer" json:"ausweisnummer"`
	Telefon       string  `bson:"telefon" json:"telefon"`
	Startdatum    string  `bson:"startdatum" json:"startdatum"`
	Enddatum      string  `bson:"enddatum" json:"enddatum"`
	Dauer         string  `bson:"dauer" json:"dauer"`
	Preis         float64 `bson:"preis" json:"preis"`
	Unterkunft    string  `bson:"unterkunft" json:"unterkunft"`
	Standort      string  `bson:"standort" json:"standort"`
	FotoAusweis   string  `bson:"fotoAusweis" json:"fotoAusweis"`
	FotoPass      string  `bson:"fotoPass" json:"fotoPass"`
}

// AccommodationPatch lists the fields a caller may change. The id is not
// patchable, a value supplied for it in the request body is dropped on decode.
type AccommodationPatch struct {
	Name         *string `json:"name"`
	Beschreibung *string `json:"beschreibung"`
	Standort     *string `json:"standort"`
}

// ReservationPatch lists the patchable reservation fields. id and ownerId are
// pinned by the service, dauer is recomputed whenever a date changes.
type ReservationPatch struct {
	Vorname       *string  `json:"vorname"`
	Nachname      *string  `json:"nachname"`
	Ausweisnummer *string  `json:"ausweisnummer"`
	Telefon       *string  `json:"telefon"`
	Startdatum    *string  `json:"startdatum"`
	Enddatum      *string  `json:"enddatum"`
	Preis         *float64 `json:"preis"`
	Unterkunft    *string  `json:"unterkunft"`
	Standort      *string  `json:"standort"`
	FotoAusweis   *string  `json:"fotoAusweis"`
	FotoPass      *string  `json:"fotoPass"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string         `json:"accessToken"`
	User        *PublicAccount `json:"user"`
}

type Claims struct {
	UserID    string    `json:"id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

type RevenueSummary struct {
	GesamtMonat float64 `json:"gesamtMonat"`
	GesamtJahr  float64 `json:"gesamtJahr"`
}

func (request *RegisterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(request)
}

func (request *RegisterRequest) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(request)
}

func (request *LoginRequest) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(request)
}

func (accommodation *Accommodation) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(accommodation)
}

func (reservation *Reservation) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(reservation)
}

func (patch *AccommodationPatch) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(patch)
}

func (patch *ReservationPatch) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(patch)
}

func (reservation *Reservation) ToJSON(writer io.Writer) error {
	e := json.NewEncoder(writer)
	return e.Encode(reservation)
}

func (accommodation *Accommodation) ToJSON(writer io.Writer) error {
	e := json.NewEncoder(writer)
	return e.Encode(accommodation)
}
