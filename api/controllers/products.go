package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/javohirtm/ombor-backend/api/responses"
	"github.com/javohirtm/ombor-backend/api/validators"
	"github.com/javohirtm/ombor-backend/internal/catalog"
	dbtypes "github.com/javohirtm/ombor-backend/pkg/db/types"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/logger"
)

type productInformationRequest struct {
	ProductType string             `json:"product_type" validate:"required"`
	Brand       *string            `json:"brand"`
	ModelName   *string            `json:"model_name"`
	Description dbtypes.Translated `json:"description"`
	Attributes  dbtypes.Attributes `json:"attributes"`
}

type productCreateRequest struct {
	Name        dbtypes.Translated        `json:"name" validate:"required"`
	Description dbtypes.Translated        `json:"description"`
	Information productInformationRequest `json:"information" validate:"required"`
	Subcategory int64                     `json:"subcategory_id" validate:"required,gt=0"`
}

type productUpdateRequest struct {
	Name        dbtypes.Translated `json:"name"`
	Description dbtypes.Translated `json:"description"`
	Subcategory *int64             `json:"subcategory_id"`
}

func ProductCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		warehouseID, err := warehouseScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateProduct(r.Context(), catalog.ProductInput{
			Name:        payload.Name,
			Description: payload.Description,
			Information: catalog.ProductInformationInput{
				ProductType: payload.Information.ProductType,
				Brand:       payload.Information.Brand,
				ModelName:   payload.Information.ModelName,
				Description: payload.Information.Description,
				Attributes:  payload.Information.Attributes,
			},
			WarehouseID: warehouseID,
			Subcategory: payload.Subcategory,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		warehouseID, err := warehouseScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListProducts(r.Context(), warehouseID, paramsFromRequest(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateProduct(r.Context(), productID, catalog.ProductUpdateInput{
			Name:        payload.Name,
			Description: payload.Description,
			Subcategory: payload.Subcategory,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func ProductDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

type variantImageRequest struct {
	Image   string             `json:"image" validate:"required"`
	AltText dbtypes.Translated `json:"alt_text"`
	IsMain  bool               `json:"is_main"`
}

type variantCreateRequest struct {
	Barcode      int64                 `json:"barcode" validate:"required,gt=0"`
	ProductID    int64                 `json:"product_id" validate:"required,gt=0"`
	ComeInPrice  decimal.Decimal       `json:"come_in_price"`
	CurrentPrice decimal.Decimal       `json:"current_price"`
	IsMain       bool                  `json:"is_main"`
	Amount       decimal.Decimal       `json:"amount"`
	Weight       *float64              `json:"weight"`
	ColorID      *int64                `json:"color_id"`
	SizeID       *int64                `json:"size_id"`
	MeasureID    int64                 `json:"measure_id" validate:"required,gt=0"`
	Images       []variantImageRequest `json:"images"`
}

type variantUpdateRequest struct {
	ComeInPrice  *decimal.Decimal `json:"come_in_price"`
	CurrentPrice *decimal.Decimal `json:"current_price"`
	IsMain       *bool            `json:"is_main"`
	Weight       *float64         `json:"weight"`
	ColorID      *int64           `json:"color_id"`
	SizeID       *int64           `json:"size_id"`
	MeasureID    *int64           `json:"measure_id"`
}

func VariantCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		warehouseID, err := warehouseScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload variantCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		images := make([]catalog.VariantImageInput, 0, len(payload.Images))
		for _, image := range payload.Images {
			images = append(images, catalog.VariantImageInput{
				Image:   image.Image,
				AltText: image.AltText,
				IsMain:  image.IsMain,
			})
		}

		created, err := svc.CreateVariant(r.Context(), warehouseID, catalog.VariantInput{
			Barcode:      payload.Barcode,
			ProductID:    payload.ProductID,
			ComeInPrice:  payload.ComeInPrice,
			CurrentPrice: payload.CurrentPrice,
			IsMain:       payload.IsMain,
			Amount:       payload.Amount,
			Weight:       payload.Weight,
			ColorID:      payload.ColorID,
			SizeID:       payload.SizeID,
			MeasureID:    payload.MeasureID,
			Images:       images,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func VariantList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParseQueryInt(r, "product_id", 0, 1, 1<<31)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListVariants(r.Context(), int64(productID), paramsFromRequest(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func VariantDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		variantID, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.GetVariant(r.Context(), variantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, variant)
	}
}

// VariantByBarcode looks up a purchasable unit by its scanned barcode,
// scoped to the caller's warehouse.
func VariantByBarcode(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		warehouseID, err := warehouseScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		barcode, err := validators.ParsePathID(r, "barcode")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.GetVariantByBarcode(r.Context(), warehouseID, barcode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, variant)
	}
}

func VariantUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		variantID, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload variantUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateVariant(r.Context(), variantID, catalog.VariantUpdateInput{
			ComeInPrice:  payload.ComeInPrice,
			CurrentPrice: payload.CurrentPrice,
			IsMain:       payload.IsMain,
			Weight:       payload.Weight,
			ColorID:      payload.ColorID,
			SizeID:       payload.SizeID,
			MeasureID:    payload.MeasureID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func VariantDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		variantID, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteVariant(r.Context(), variantID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
