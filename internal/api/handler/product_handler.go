package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cosmicchronic/marketplace/internal/api/metrics"
	"github.com/cosmicchronic/marketplace/internal/core/domain"
	"github.com/cosmicchronic/marketplace/internal/core/ports"
)

// inquiryDraft is prefilled into the conversation opened from a product card.
func inquiryDraft(productName string) string {
	return fmt.Sprintf(`Hi, I'm interested in your product: "%s".`, productName)
}

// ProductHandler serves the marketplace listing.
type ProductHandler struct {
	service ports.MarketplaceService
}

func NewProductHandler(service ports.MarketplaceService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /v1/products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   productResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	products, err := h.service.Products(ctx)
	if err != nil {
		return err
	}
	users, err := h.service.Users(ctx)
	if err != nil {
		return err
	}

	sellers := indexUsers(users)
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p, sellers, sess.User.ID))
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /v1/products. Only sellers may list.
//
// @Summary      List a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req createProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.service.AddProduct(c.Request().Context(), sess.ID, domain.NewProduct{
		Name:        req.Name,
		Strain:      domain.Strain(req.Strain),
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		return rejected("add_product", err)
	}
	metrics.ProductsCreatedTotal.WithLabelValues(string(product.Strain)).Inc()

	sellers := map[string]domain.User{sess.User.ID: sess.User}
	return c.JSON(http.StatusCreated, toProductResponse(*product, sellers, sess.User.ID))
}

// Inquiry handles POST /v1/products/:id/inquiry. It records a one-shot
// target for the product's seller with a prefilled draft; the next
// GET /v1/dm/open consumes it.
//
// @Summary      Contact a product's seller
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  inquiryResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/products/{id}/inquiry [post]
func (h *ProductHandler) Inquiry(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	product, err := h.service.FindProductByID(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	target, err := h.service.InitiateDirectMessage(ctx, sess.ID, product.SellerID, inquiryDraft(product.Name))
	if err != nil {
		return rejected("initiate_dm", err)
	}
	return c.JSON(http.StatusOK, inquiryResponse{Target: *target, View: ViewDirectMessages})
}
