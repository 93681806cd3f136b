package models

import "time"

// Plan representa uma oferta comercial de um produto (quantidade + preço).
// O link_checkout é gerado uma única vez na criação (token aleatório de 128 bits
// em hex) e nunca se repete entre planos: é o identificador público e não
// adivinhável da página de checkout do comprador.
type Plan struct {
	ID        int64   `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ProductID int64   `gorm:"column:produto_id;not null;index" json:"produto_id"`
	Name      string  `gorm:"column:nome;not null" json:"nome" form:"nome"`
	Quantity  int64   `gorm:"column:quantidade;not null" json:"quantidade" form:"quantidade"`
	Price     float64 `gorm:"column:preco;type:decimal(10,2);not null" json:"preco" form:"preco"`

	CheckoutLink string `gorm:"column:link_checkout;unique_index" json:"link_checkout"`
	Banner       string `gorm:"column:banner;type:text" json:"banner" form:"banner"`

	// Configuração de pixel (Conversions API). O access token nunca sai no JSON:
	// os eventos são disparados sempre pelo servidor.
	PixelID          string `gorm:"column:pixel_id" json:"pixel_id"`
	PixelAccessToken string `gorm:"column:pixel_access_token" json:"-"`

	// Plano inativo nunca é vendável: o lookup de checkout filtra ativo=true.
	Active    bool       `gorm:"column:ativo;not null;default:true" json:"ativo"`
	CreatedAt *time.Time `gorm:"column:criado_em" json:"criado_em"`
}

func (Plan) TableName() string {
	return "planos"
}
