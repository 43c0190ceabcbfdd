package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/javohirtm/ombor-backend/pkg/db"
	"github.com/javohirtm/ombor-backend/pkg/db/models"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds the catalog service with its dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	if len(input.Name) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}
	category := &models.Category{
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
		WarehouseID: input.WarehouseID,
	}
	if _, err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return category, nil
}

func (s *service) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.repo.FindCategory(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "category not found", "load category")
	}
	return category, nil
}

func (s *service) ListCategories(ctx context.Context, params pagination.Params) (*pagination.Page, error) {
	categories, total, err := s.repo.ListCategories(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	page := pagination.NewPage(categories, total, params)
	return &page, nil
}

func (s *service) UpdateCategory(ctx context.Context, id int64, input CategoryInput) (*models.Category, error) {
	updates := map[string]any{}
	if len(input.Name) > 0 {
		updates["name"] = input.Name
	}
	if len(input.Description) > 0 {
		updates["description"] = input.Description
	}
	if input.Image != nil {
		updates["image"] = *input.Image
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if err := s.repo.UpdateCategory(ctx, id, updates); err != nil {
		return nil, notFoundOr(err, "category not found", "update category")
	}
	return s.GetCategory(ctx, id)
}

func (s *service) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return notFoundOr(err, "category not found", "delete category")
	}
	return nil
}

func (s *service) CreateSubcategory(ctx context.Context, input SubcategoryInput) (*models.Subcategory, error) {
	if len(input.Name) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subcategory name required")
	}
	if _, err := s.repo.FindCategory(ctx, input.CategoryID); err != nil {
		return nil, notFoundOr(err, "category not found", "load category")
	}
	subcategory := &models.Subcategory{
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
	}
	if _, err := s.repo.CreateSubcategory(ctx, subcategory); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create subcategory")
	}
	return subcategory, nil
}

func (s *service) ListSubcategories(ctx context.Context, categoryID int64, params pagination.Params) (*pagination.Page, error) {
	subcategories, total, err := s.repo.ListSubcategories(ctx, categoryID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subcategories")
	}
	page := pagination.NewPage(subcategories, total, params)
	return &page, nil
}

func (s *service) UpdateSubcategory(ctx context.Context, id int64, input SubcategoryInput) (*models.Subcategory, error) {
	updates := map[string]any{}
	if len(input.Name) > 0 {
		updates["name"] = input.Name
	}
	if len(input.Description) > 0 {
		updates["description"] = input.Description
	}
	if input.CategoryID != 0 {
		if _, err := s.repo.FindCategory(ctx, input.CategoryID); err != nil {
			return nil, notFoundOr(err, "category not found", "load category")
		}
		updates["category_id"] = input.CategoryID
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if err := s.repo.UpdateSubcategory(ctx, id, updates); err != nil {
		return nil, notFoundOr(err, "subcategory not found", "update subcategory")
	}
	subcategory, err := s.repo.FindSubcategory(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "subcategory not found", "load subcategory")
	}
	return subcategory, nil
}

func (s *service) DeleteSubcategory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteSubcategory(ctx, id); err != nil {
		return notFoundOr(err, "subcategory not found", "delete subcategory")
	}
	return nil
}

func (s *service) CreateColor(ctx context.Context, input ColorInput) (*models.Color, error) {
	if len(input.Name) == 0 || input.HexCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "color name and hex code required")
	}
	color := &models.Color{Name: input.Name, HexCode: input.HexCode}
	if _, err := s.repo.CreateColor(ctx, color); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create color")
	}
	return color, nil
}

func (s *service) ListColors(ctx context.Context, params pagination.Params) (*pagination.Page, error) {
	colors, total, err := s.repo.ListColors(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list colors")
	}
	page := pagination.NewPage(colors, total, params)
	return &page, nil
}

func (s *service) UpdateColor(ctx context.Context, id int64, input ColorInput) error {
	updates := map[string]any{}
	if len(input.Name) > 0 {
		updates["name"] = input.Name
	}
	if input.HexCode != "" {
		updates["hex_code"] = input.HexCode
	}
	if len(updates) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if err := s.repo.UpdateColor(ctx, id, updates); err != nil {
		return notFoundOr(err, "color not found", "update color")
	}
	return nil
}

func (s *service) DeleteColor(ctx context.Context, id int64) error {
	if err := s.repo.DeleteColor(ctx, id); err != nil {
		return notFoundOr(err, "color not found", "delete color")
	}
	return nil
}

func (s *service) CreateSize(ctx context.Context, input SizeInput) (*models.Size, error) {
	if input.Size == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size label required")
	}
	if input.WarehouseID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "warehouse context missing")
	}
	size := &models.Size{
		Size:        input.Size,
		Description: input.Description,
		WarehouseID: input.WarehouseID,
	}
	if _, err := s.repo.CreateSize(ctx, size); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create size")
	}
	return size, nil
}

func (s *service) ListSizes(ctx context.Context, warehouseID int64, params pagination.Params) (*pagination.Page, error) {
	sizes, total, err := s.repo.ListSizes(ctx, warehouseID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sizes")
	}
	page := pagination.NewPage(sizes, total, params)
	return &page, nil
}

func (s *service) UpdateSize(ctx context.Context, id int64, input SizeInput) error {
	updates := map[string]any{}
	if input.Size != "" {
		updates["size"] = input.Size
	}
	if len(input.Description) > 0 {
		updates["description"] = input.Description
	}
	if len(updates) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if err := s.repo.UpdateSize(ctx, id, updates); err != nil {
		return notFoundOr(err, "size not found", "update size")
	}
	return nil
}

func (s *service) DeleteSize(ctx context.Context, id int64) error {
	if err := s.repo.DeleteSize(ctx, id); err != nil {
		return notFoundOr(err, "size not found", "delete size")
	}
	return nil
}

func (s *service) CreateMeasure(ctx context.Context, input MeasureInput) (*models.Measure, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "measure name required")
	}
	measure := &models.Measure{Name: input.Name}
	if _, err := s.repo.CreateMeasure(ctx, measure); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create measure")
	}
	return measure, nil
}

func (s *service) ListMeasures(ctx context.Context, params pagination.Params) (*pagination.Page, error) {
	measures, total, err := s.repo.ListMeasures(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list measures")
	}
	page := pagination.NewPage(measures, total, params)
	return &page, nil
}

func (s *service) UpdateMeasure(ctx context.Context, id int64, input MeasureInput) error {
	if input.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if err := s.repo.UpdateMeasure(ctx, id, map[string]any{"name": input.Name}); err != nil {
		return notFoundOr(err, "measure not found", "update measure")
	}
	return nil
}

func (s *service) DeleteMeasure(ctx context.Context, id int64) error {
	if err := s.repo.DeleteMeasure(ctx, id); err != nil {
		return notFoundOr(err, "measure not found", "delete measure")
	}
	return nil
}

// CreateProduct writes the information row and the product in one
// transaction so a failed product create leaves no orphan.
func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	if len(input.Name) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if input.Information.ProductType == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product type required")
	}
	if input.WarehouseID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "warehouse context missing")
	}

	var productID int64
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindSubcategory(ctx, input.Subcategory); err != nil {
			return notFoundOr(err, "subcategory not found", "load subcategory")
		}

		info := &models.ProductInformation{
			ProductType: input.Information.ProductType,
			Brand:       input.Information.Brand,
			ModelName:   input.Information.ModelName,
			Description: input.Information.Description,
			Attributes:  input.Information.Attributes,
			WarehouseID: input.WarehouseID,
		}
		if _, err := repo.CreateProductInformation(ctx, info); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product information")
		}

		product := &models.Product{
			Name:                 input.Name,
			Description:          input.Description,
			ProductInformationID: info.ID,
			WarehouseID:          input.WarehouseID,
			SubcategoryID:        input.Subcategory,
		}
		if _, err := repo.CreateProduct(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
		}
		productID = product.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, productID)
}

func (s *service) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "product not found", "load product")
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context, warehouseID int64, params pagination.Params) (*pagination.Page, error) {
	products, total, err := s.repo.ListProducts(ctx, warehouseID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	page := pagination.NewPage(products, total, params)
	return &page, nil
}

func (s *service) UpdateProduct(ctx context.Context, id int64, input ProductUpdateInput) (*models.Product, error) {
	updates := map[string]any{}
	if len(input.Name) > 0 {
		updates["name"] = input.Name
	}
	if len(input.Description) > 0 {
		updates["description"] = input.Description
	}
	if input.Subcategory != nil {
		if _, err := s.repo.FindSubcategory(ctx, *input.Subcategory); err != nil {
			return nil, notFoundOr(err, "subcategory not found", "load subcategory")
		}
		updates["subcategory_id"] = *input.Subcategory
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if err := s.repo.UpdateProduct(ctx, id, updates); err != nil {
		return nil, notFoundOr(err, "product not found", "update product")
	}
	return s.GetProduct(ctx, id)
}

func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return notFoundOr(err, "product not found", "delete product")
	}
	return nil
}

// CreateVariant validates warehouse ownership of the parent product and
// writes the variant with its images in one transaction.
func (s *service) CreateVariant(ctx context.Context, warehouseID int64, input VariantInput) (*models.ProductVariant, error) {
	if input.Barcode <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "barcode required")
	}
	if input.CurrentPrice.IsNegative() || input.ComeInPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prices must not be negative")
	}
	if input.Amount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must not be negative")
	}
	if input.MeasureID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "measure required")
	}

	var variantID int64
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		product, err := repo.FindProduct(ctx, input.ProductID)
		if err != nil {
			return notFoundOr(err, "product not found", "load product")
		}
		if product.WarehouseID != warehouseID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "product belongs to another warehouse")
		}

		variant := &models.ProductVariant{
			Barcode:      input.Barcode,
			ProductID:    input.ProductID,
			ComeInPrice:  input.ComeInPrice,
			CurrentPrice: input.CurrentPrice,
			IsMain:       input.IsMain,
			Amount:       input.Amount,
			Weight:       input.Weight,
			ColorID:      input.ColorID,
			SizeID:       input.SizeID,
			MeasureID:    input.MeasureID,
		}
		for _, image := range input.Images {
			variant.Images = append(variant.Images, models.ProductImage{
				Image:   image.Image,
				AltText: image.AltText,
				IsMain:  image.IsMain,
			})
		}
		if _, err := repo.CreateVariant(ctx, variant); err != nil {
			if db.IsUniqueViolation(err, "idx_product_variants_barcode") {
				return pkgerrors.New(pkgerrors.CodeConflict, "barcode already in use").
					WithDetails(map[string]any{"barcode": input.Barcode})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create variant")
		}
		variantID = variant.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetVariant(ctx, variantID)
}

func (s *service) GetVariant(ctx context.Context, id int64) (*models.ProductVariant, error) {
	variant, err := s.repo.FindVariant(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "product variant not found", "load variant")
	}
	return variant, nil
}

func (s *service) GetVariantByBarcode(ctx context.Context, warehouseID, barcode int64) (*models.ProductVariant, error) {
	variant, err := s.repo.FindVariantByBarcode(ctx, warehouseID, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product variant not found").
				WithDetails(map[string]any{"barcode": barcode})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
	}
	return variant, nil
}

func (s *service) ListVariants(ctx context.Context, productID int64, params pagination.Params) (*pagination.Page, error) {
	variants, total, err := s.repo.ListVariants(ctx, productID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list variants")
	}
	page := pagination.NewPage(variants, total, params)
	return &page, nil
}

func (s *service) UpdateVariant(ctx context.Context, id int64, input VariantUpdateInput) (*models.ProductVariant, error) {
	updates := map[string]any{}
	if input.ComeInPrice != nil {
		if input.ComeInPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "prices must not be negative")
		}
		updates["come_in_price"] = *input.ComeInPrice
	}
	if input.CurrentPrice != nil {
		if input.CurrentPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "prices must not be negative")
		}
		updates["current_price"] = *input.CurrentPrice
	}
	if input.IsMain != nil {
		updates["is_main"] = *input.IsMain
	}
	if input.Weight != nil {
		updates["weight"] = *input.Weight
	}
	if input.ColorID != nil {
		updates["color_id"] = *input.ColorID
	}
	if input.SizeID != nil {
		updates["size_id"] = *input.SizeID
	}
	if input.MeasureID != nil {
		updates["measure_id"] = *input.MeasureID
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if err := s.repo.UpdateVariant(ctx, id, updates); err != nil {
		return nil, notFoundOr(err, "product variant not found", "update variant")
	}
	return s.GetVariant(ctx, id)
}

func (s *service) DeleteVariant(ctx context.Context, id int64) error {
	if err := s.repo.DeleteVariant(ctx, id); err != nil {
		return notFoundOr(err, "product variant not found", "delete variant")
	}
	return nil
}

func notFoundOr(err error, notFoundMsg, wrapMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMsg)
	}
	if typed := pkgerrors.As(err); typed != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, wrapMsg)
}
