package storage

import (
	"time"

	"venditto/models"
	"venditto/tools"

	"github.com/jinzhu/gorm"
)

// Gateway é o único mutador do estado persistido. Todas as escritas são
// operações de um único statement: a serialização fica por conta do controle
// de concorrência do próprio banco e dos índices únicos (link_checkout,
// pix_txid).
type Gateway struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

func (g *Gateway) CreateProduct(nome, descricao, imagem string) (*models.Product, error) {
	product := models.Product{
		Name:        nome,
		Description: descricao,
		Image:       imagem,
	}
	if err := g.db.Create(&product).Error; err != nil {
		return nil, wrap("criar produto", err)
	}
	return &product, nil
}

// ListProductsWithPlans devolve os produtos (mais recentes primeiro) com os
// planos aninhados.
func (g *Gateway) ListProductsWithPlans() ([]models.Product, error) {
	var products []models.Product
	err := g.db.
		Preload("Plans", func(db *gorm.DB) *gorm.DB {
			return db.Order("planos.id asc")
		}).
		Order("criado_em desc, id desc").
		Find(&products).Error
	if err != nil {
		return nil, wrap("listar produtos", err)
	}
	return products, nil
}

// CreatePlan cria um plano sob um produto existente, gerando o link de
// checkout. Produto inexistente vira ConstraintViolationError; colisão do
// token (astronomicamente improvável) é resolvida com uma nova tentativa.
func (g *Gateway) CreatePlan(produtoID int64, nome string, quantidade int64, preco float64, banner string) (*models.Plan, error) {
	var product models.Product
	if err := g.db.First(&product, produtoID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, &ConstraintViolationError{
				Constraint: "planos.produto_id",
				Message:    "produto não existe",
			}
		}
		return nil, wrap("buscar produto do plano", err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		link, err := tools.CheckoutToken()
		if err != nil {
			return nil, wrap("gerar link de checkout", err)
		}

		plan := models.Plan{
			ProductID:    produtoID,
			Name:         nome,
			Quantity:     quantidade,
			Price:        preco,
			CheckoutLink: link,
			Banner:       banner,
			Active:       true,
		}
		err = g.db.Create(&plan).Error
		if err == nil {
			return &plan, nil
		}
		if isDuplicateErr(err) && attempt == 0 {
			continue
		}
		if isDuplicateErr(err) {
			return nil, &ConstraintViolationError{
				Constraint: "planos.link_checkout",
				Message:    err.Error(),
			}
		}
		return nil, wrap("criar plano", err)
	}
	// inalcançável, mas o compilador não sabe
	return nil, wrap("criar plano", gorm.ErrInvalidSQL)
}

// PlanUpdate carrega os campos opcionais do update de plano. Ponteiro nil
// significa "não mexer".
type PlanUpdate struct {
	Name     *string
	Quantity *int64
	Price    *float64
	Banner   *string
	Active   *bool
}

func (g *Gateway) UpdatePlan(planID int64, upd PlanUpdate) (*models.Plan, error) {
	var plan models.Plan
	if err := g.db.First(&plan, planID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, wrap("buscar plano", err)
	}

	fields := map[string]interface{}{}
	if upd.Name != nil {
		fields["nome"] = *upd.Name
	}
	if upd.Quantity != nil {
		fields["quantidade"] = *upd.Quantity
	}
	if upd.Price != nil {
		fields["preco"] = *upd.Price
	}
	if upd.Banner != nil {
		fields["banner"] = *upd.Banner
	}
	if upd.Active != nil {
		fields["ativo"] = *upd.Active
	}
	if len(fields) == 0 {
		return &plan, nil
	}

	if err := g.db.Model(&plan).Updates(fields).Error; err != nil {
		return nil, wrap("atualizar plano", err)
	}
	return &plan, nil
}

func (g *Gateway) UpdatePlanPixelConfig(planID int64, pixelID, pixelAccessToken string) error {
	res := g.db.Model(&models.Plan{}).
		Where("id = ?", planID).
		Updates(map[string]interface{}{
			"pixel_id":           pixelID,
			"pixel_access_token": pixelAccessToken,
		})
	if res.Error != nil {
		return wrap("atualizar pixel do plano", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CheckoutPlan é o plano com os campos do produto pai que a página de
// checkout precisa renderizar.
type CheckoutPlan struct {
	models.Plan
	ProductName        string `gorm:"column:produto_nome" json:"produto_nome"`
	ProductDescription string `gorm:"column:produto_descricao" json:"descricao"`
	ProductImage       string `gorm:"column:produto_imagem" json:"imagem"`
}

const planWithProductSelect = "planos.*, produtos.nome AS produto_nome, " +
	"produtos.descricao AS produto_descricao, produtos.imagem AS produto_imagem"

// GetActivePlanByCheckoutLink resolve o link público do checkout.
// Plano inativo é indistinguível de inexistente para o comprador.
func (g *Gateway) GetActivePlanByCheckoutLink(link string) (*CheckoutPlan, error) {
	var cp CheckoutPlan
	res := g.db.Table("planos").
		Select(planWithProductSelect).
		Joins("JOIN produtos ON produtos.id = planos.produto_id").
		Where("planos.link_checkout = ? AND planos.ativo = ?", link, true).
		Scan(&cp)
	if res.RecordNotFound() {
		return nil, ErrNotFound
	}
	if res.Error != nil {
		return nil, wrap("buscar plano por link", res.Error)
	}
	return &cp, nil
}

// GetPlanWithProduct busca o plano por id, sem filtro de ativo: o caminho do
// webhook precisa resolver o plano mesmo que ele tenha sido desativado depois
// da venda. Quem cria venda valida Active por conta própria.
func (g *Gateway) GetPlanWithProduct(planID int64) (*CheckoutPlan, error) {
	var cp CheckoutPlan
	res := g.db.Table("planos").
		Select(planWithProductSelect).
		Joins("JOIN produtos ON produtos.id = planos.produto_id").
		Where("planos.id = ?", planID).
		Scan(&cp)
	if res.RecordNotFound() {
		return nil, ErrNotFound
	}
	if res.Error != nil {
		return nil, wrap("buscar plano", res.Error)
	}
	return &cp, nil
}

// NewSale agrupa os campos da criação de venda. Amount é a fotografia do preço
// do plano tirada pelo coordenador no instante do checkout.
type NewSale struct {
	PlanID int64

	BuyerName       string
	BuyerEmail      string
	BuyerPhone      string
	BuyerZip        string
	BuyerStreet     string
	BuyerNumber     string
	BuyerComplement string
	BuyerDistrict   string
	BuyerCity       string
	BuyerState      string

	Amount        float64
	QRCodeImage   string
	PixCode       string
	TransactionID string
}

func (g *Gateway) CreateSale(in NewSale) (*models.Sale, error) {
	sale := models.Sale{
		PlanID:           in.PlanID,
		BuyerName:        in.BuyerName,
		BuyerEmail:       in.BuyerEmail,
		BuyerPhone:       in.BuyerPhone,
		BuyerZip:         in.BuyerZip,
		BuyerStreet:      in.BuyerStreet,
		BuyerNumber:      in.BuyerNumber,
		BuyerComplement:  in.BuyerComplement,
		BuyerDistrict:    in.BuyerDistrict,
		BuyerCity:        in.BuyerCity,
		BuyerState:       in.BuyerState,
		Amount:           in.Amount,
		Status:           models.SaleStatusPending,
		PixQRCode:        in.QRCodeImage,
		PixCode:          in.PixCode,
		PixTransactionID: in.TransactionID,
	}
	if err := g.db.Create(&sale).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, &ConstraintViolationError{
				Constraint: "vendas.pix_txid",
				Message:    err.Error(),
			}
		}
		return nil, wrap("criar venda", err)
	}
	return &sale, nil
}

// SaleListItem é a venda com os nomes do plano e do produto, para o painel.
type SaleListItem struct {
	models.Sale
	PlanName    string `gorm:"column:plano_nome" json:"plano_nome"`
	ProductName string `gorm:"column:produto_nome" json:"produto_nome"`
}

func (g *Gateway) ListSalesWithPlanAndProduct() ([]SaleListItem, error) {
	var items []SaleListItem
	err := g.db.Table("vendas").
		Select("vendas.*, planos.nome AS plano_nome, produtos.nome AS produto_nome").
		Joins("JOIN planos ON planos.id = vendas.plano_id").
		Joins("JOIN produtos ON produtos.id = planos.produto_id").
		Order("vendas.criado_em desc, vendas.id desc").
		Scan(&items).Error
	if err != nil {
		return nil, wrap("listar vendas", err)
	}
	return items, nil
}

// SaleStats agrega o painel de vendas. Os somatórios condicionam pelo status,
// sempre sobre o valor fotografado da venda.
type SaleStats struct {
	TotalSales   int64   `json:"total_vendas"`
	TotalRevenue float64 `json:"total_faturado"`
	TotalPending float64 `json:"total_pendente"`
	PaidCount    int64   `json:"vendas_pagas"`
}

func (g *Gateway) GetSaleStats() (*SaleStats, error) {
	var stats SaleStats
	row := g.db.Table("vendas").
		Select("COUNT(*), "+
			"COALESCE(SUM(CASE WHEN status = ? THEN valor ELSE 0 END), 0), "+
			"COALESCE(SUM(CASE WHEN status = ? THEN valor ELSE 0 END), 0), "+
			"COUNT(CASE WHEN status = ? THEN 1 END)",
			models.SaleStatusPaid, models.SaleStatusPending, models.SaleStatusPaid).
		Row()
	if err := row.Scan(&stats.TotalSales, &stats.TotalRevenue, &stats.TotalPending, &stats.PaidCount); err != nil {
		return nil, wrap("agregar vendas", err)
	}
	return &stats, nil
}

func (g *Gateway) GetSaleByTransactionID(txid string) (*models.Sale, error) {
	var sale models.Sale
	err := g.db.Where("pix_txid = ?", txid).First(&sale).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, wrap("buscar venda por txid", err)
	}
	return &sale, nil
}

// MarkSalePaid faz a transição pending->paid em um único UPDATE condicional.
// Devolve false quando nenhuma linha mudou: txid desconhecido ou venda já
// paga. Entregas duplicadas do webhook caem nesse caso e não são erro — o
// retorno booleano é o que garante exatamente um evento Purchase por venda.
func (g *Gateway) MarkSalePaid(txid string) (bool, error) {
	now := time.Now()
	res := g.db.Model(&models.Sale{}).
		Where("pix_txid = ? AND status = ?", txid, models.SaleStatusPending).
		Updates(map[string]interface{}{
			"status":  models.SaleStatusPaid,
			"pago_em": now,
		})
	if res.Error != nil {
		return false, wrap("marcar venda paga", res.Error)
	}
	return res.RowsAffected > 0, nil
}
