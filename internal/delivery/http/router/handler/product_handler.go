package handler

import (
	"log/slog"
	"net/http"

	"souqlink/internal/delivery/http/middleware"
	"souqlink/internal/delivery/http/response"
	domainerrors "souqlink/internal/domain/errors"
	"souqlink/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for the catalog endpoints.
type ProductHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create lists a new product for the authenticated merchant.
func (h *ProductHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	var input usecase.CreateProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c)
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, map[string]any{"product": toProductView(product)})
}

// ListMine returns the merchant's own products.
func (h *ProductHandler) ListMine(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	products, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]any{"products": toProductViews(products)})
}

// ListActive returns the marketer-facing catalog.
func (h *ProductHandler) ListActive(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	listings, err := h.uc.ListActive(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]any{"products": toListingViews(listings)})
}

// Get returns a product's public detail.
func (h *ProductHandler) Get(c echo.Context) error {
	productID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	listing, err := h.uc.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]any{"product": toListingView(listing)})
}

// Update applies a partial update to an owned product.
func (h *ProductHandler) Update(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	productID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var input usecase.UpdateProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c)
	}

	if err := h.uc.UpdateProduct(c.Request().Context(), userID, productID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "تم تحديث المنتج")
}

// Delete removes an owned, order-free product.
func (h *ProductHandler) Delete(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	productID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), userID, productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "تم حذف المنتج")
}

// ToggleActive flips the product's active flag.
func (h *ProductHandler) ToggleActive(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	productID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	active, err := h.uc.ToggleActive(c.Request().Context(), userID, productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]any{"is_active": active})
}

// QR renders the product share QR code as a PNG.
func (h *ProductHandler) QR(c echo.Context) error {
	productID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	png, err := h.uc.ProductQR(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// Follow subscribes the authenticated marketer to a merchant's catalog.
func (h *ProductHandler) Follow(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	merchantID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.FollowMerchant(c.Request().Context(), userID, merchantID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "تمت متابعة التاجر")
}

// Unfollow removes the follow.
func (h *ProductHandler) Unfollow(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	merchantID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.UnfollowMerchant(c.Request().Context(), userID, merchantID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "تم إلغاء متابعة التاجر")
}

// Following returns the merchants the authenticated marketer follows.
func (h *ProductHandler) Following(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, domainerrors.ErrAuthenticationRequired.Message())
	}

	merchants, err := h.uc.ListFollowedMerchants(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]any{"merchants": toUserViews(merchants)})
}

// parseIDParam parses the :id path parameter as a UUID. The returned error is
// an echo.HTTPError the central error handler turns into a 400 payload.
func parseIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "المعرف غير صحيح")
	}

	return id, nil
}
