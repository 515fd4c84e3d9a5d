package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"bgmsons/internal/catalog"
	"bgmsons/internal/mailer"

	"github.com/google/uuid"
)

// Placeholder values the contact form's dropdowns submit when nothing
// was picked; they are omitted from the rendered enquiry.
const (
	placeholderProductInterest = "Select Product Interest"
	placeholderIndustry        = "Select Industry"
)

type enquiryPayload struct {
	Name            string `json:"name" validate:"required,max=200"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Phone           string `json:"phone" validate:"omitempty,max=20"`
	Company         string `json:"company" validate:"omitempty,max=200"`
	ProductInterest string `json:"productInterest" validate:"omitempty,max=200"`
	Industry        string `json:"industry" validate:"omitempty,max=200"`
	Message         string `json:"message" validate:"required,max=5000"`
}

type productEnquiryPayload struct {
	Name      string `json:"name" validate:"required,max=200"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Message   string `json:"message" validate:"required,max=5000"`
	ProductID string `json:"productId" validate:"required,max=64"`
}

type enquiryResponse struct {
	Success   bool   `json:"success"`
	Reference string `json:"reference"`
}

func (app *application) sendEnquiryHandler(w http.ResponseWriter, r *http.Request) {
	var payload enquiryPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	data := mailer.EnquiryData{
		EnquiryType: "New Enquiry",
		Date:        time.Now().Format(time.RFC1123),
		Name:        payload.Name,
		Email:       payload.Email,
		Phone:       payload.Phone,
		Message:     payload.Message,
	}
	if payload.Company != "" {
		data.Rows = append(data.Rows, mailer.EnquiryRow{Key: "Company", Value: payload.Company})
	}
	if payload.ProductInterest != "" && payload.ProductInterest != placeholderProductInterest {
		data.Rows = append(data.Rows, mailer.EnquiryRow{Key: "Product Interest", Value: payload.ProductInterest})
	}
	if payload.Industry != "" && payload.Industry != placeholderIndustry {
		data.Rows = append(data.Rows, mailer.EnquiryRow{Key: "Industry", Value: payload.Industry})
	}

	app.deliverEnquiry(w, r, "New enquiry from "+payload.Name, payload.Email, data)
}

func (app *application) sendProductEnquiryHandler(w http.ResponseWriter, r *http.Request) {
	var payload productEnquiryPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// The product must exist; a broken link in the enquiry mail helps
	// nobody.
	if _, err := app.products.GetByID(r.Context(), payload.ProductID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	productLink := fmt.Sprintf("http://%s/products/%s", app.config.mail.domain, payload.ProductID)

	data := mailer.EnquiryData{
		EnquiryType: "New Product Enquiry",
		Date:        time.Now().Format(time.RFC1123),
		Name:        payload.Name,
		Email:       payload.Email,
		Phone:       payload.Phone,
		Message:     payload.Message,
		Rows: []mailer.EnquiryRow{
			{Key: "Product Link", Value: productLink},
		},
	}

	app.deliverEnquiry(w, r, "New product enquiry from "+payload.Name, payload.Email, data)
}

func (app *application) deliverEnquiry(w http.ResponseWriter, r *http.Request, subject, replyTo string, data mailer.EnquiryData) {
	reference := uuid.New().String()

	if err := app.mailer.Send(mailer.EnquiryTemplate, subject, replyTo, data); err != nil {
		app.logger.Errorw("error sending enquiry mail", "reference", reference, "error", err)
		writeJSONError(w, http.StatusBadGateway, "could not deliver the enquiry, please try again")
		return
	}

	app.logger.Infow("enquiry sent", "reference", reference, "type", data.EnquiryType)

	writeJSON(w, http.StatusOK, enquiryResponse{Success: true, Reference: reference})
}
