package controllers

import (
	"net/http"

	"venditto/models"
	"venditto/storage"

	"github.com/gin-gonic/gin"
)

type CreateProductRequest struct {
	Name        string `json:"nome" form:"nome"`
	Description string `json:"descricao" form:"descricao"`
	Image       string `json:"imagem" form:"imagem"`
}

type CreatePlanRequest struct {
	Name     string  `json:"nome" form:"nome"`
	Quantity int64   `json:"quantidade" form:"quantidade"`
	Price    float64 `json:"preco" form:"preco"`
	Banner   string  `json:"banner" form:"banner"`
}

type UpdatePlanRequest struct {
	Name     *string  `json:"nome"`
	Quantity *int64   `json:"quantidade"`
	Price    *float64 `json:"preco"`
	Banner   *string  `json:"banner"`
	Active   *bool    `json:"ativo"`
}

type UpdatePlanPixelRequest struct {
	PixelID          string `json:"pixel_id" form:"pixel_id"`
	PixelAccessToken string `json:"pixel_access_token" form:"pixel_access_token"`
}

// PlanWithURL é o plano recém-criado com a URL pública de checkout.
type PlanWithURL struct {
	models.Plan
	CheckoutURL string `json:"url_checkout"`
}

// GET /api/produtos
func GetProducts(c *gin.Context) {
	deps, ok := mustDeps(c)
	if !ok {
		return
	}

	products, err := deps.Storage.ListProductsWithPlans()
	if err != nil {
		respondStorageError(c, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	RespondSuccess(c, products)
}

// POST /api/produtos
func CreateProduct(c *gin.Context) {
	deps, ok := mustDeps(c)
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		RespondError(c, "nome é obrigatório", http.StatusBadRequest)
		return
	}

	product, err := deps.Storage.CreateProduct(req.Name, req.Description, req.Image)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	RespondSuccess(c, product)
}

// POST /api/produtos/:produtoId/planos
func CreatePlan(c *gin.Context) {
	deps, ok := mustDeps(c)
	if !ok {
		return
	}

	produtoID, ok := ParamID(c, "produtoId")
	if !ok {
		return
	}

	var req CreatePlanRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		RespondError(c, "nome é obrigatório", http.StatusBadRequest)
		return
	}
	if req.Quantity <= 0 {
		RespondError(c, "quantidade deve ser maior que zero", http.StatusBadRequest)
		return
	}
	if req.Price < 0 {
		RespondError(c, "preco não pode ser negativo", http.StatusBadRequest)
		return
	}

	plan, err := deps.Storage.CreatePlan(produtoID, req.Name, req.Quantity, req.Price, req.Banner)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	RespondSuccess(c, PlanWithURL{
		Plan:        *plan,
		CheckoutURL: deps.BaseURL + "/checkout/" + plan.CheckoutLink,
	})
}

// PUT /api/planos/:id
// Atualização parcial: só mexe no que veio no body. É por aqui que um plano é
// desativado (ativo=false) e some do checkout.
func UpdatePlan(c *gin.Context) {
	deps, ok := mustDeps(c)
	if !ok {
		return
	}

	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdatePlanRequest
	if err := c.BindJSON(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Price != nil && *req.Price < 0 {
		RespondError(c, "preco não pode ser negativo", http.StatusBadRequest)
		return
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		RespondError(c, "quantidade deve ser maior que zero", http.StatusBadRequest)
		return
	}

	plan, err := deps.Storage.UpdatePlan(id, storage.PlanUpdate{
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
		Banner:   req.Banner,
		Active:   req.Active,
	})
	if err != nil {
		if storage.IsNotFound(err) {
			RespondError(c, "plano não encontrado", http.StatusNotFound)
			return
		}
		respondStorageError(c, err)
		return
	}

	RespondSuccess(c, plan)
}

// PUT /api/planos/:id/pixel
func UpdatePlanPixelConfig(c *gin.Context) {
	deps, ok := mustDeps(c)
	if !ok {
		return
	}

	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdatePlanPixelRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if err := deps.Storage.UpdatePlanPixelConfig(id, req.PixelID, req.PixelAccessToken); err != nil {
		if storage.IsNotFound(err) {
			RespondError(c, "plano não encontrado", http.StatusNotFound)
			return
		}
		respondStorageError(c, err)
		return
	}

	RespondSuccess(c, gin.H{"success": true})
}

// GET /api/checkout/:link
func GetCheckoutPlan(c *gin.Context) {
	deps, ok := mustDeps(c)
	if !ok {
		return
	}

	link := c.Param("link")
	if link == "" {
		RespondError(c, "link é obrigatório", http.StatusBadRequest)
		return
	}

	plan, err := deps.Storage.GetActivePlanByCheckoutLink(link)
	if err != nil {
		if storage.IsNotFound(err) {
			RespondError(c, "plano não encontrado", http.StatusNotFound)
			return
		}
		respondStorageError(c, err)
		return
	}

	RespondSuccess(c, plan)
}
