package models

import "time"

// Status possíveis de uma venda. O ciclo de vida tem uma única transição:
// pending -> paid, disparada exclusivamente pelo webhook do provedor quando o
// pix_txid confere. Não existe cancelamento, expiração ou estorno.
const (
	SaleStatusPending = "pending"
	SaleStatusPaid    = "paid"
)

// Sale representa uma venda iniciada no checkout.
// O campo valor é uma fotografia do preço do plano no momento da criação:
// mudar o preço do plano depois não afeta vendas já registradas.
type Sale struct {
	ID     int64 `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	PlanID int64 `gorm:"column:plano_id;not null;index" json:"plano_id"`

	BuyerName       string `gorm:"column:cliente_nome" json:"cliente_nome" form:"cliente_nome"`
	BuyerEmail      string `gorm:"column:cliente_email" json:"cliente_email" form:"cliente_email"`
	BuyerPhone      string `gorm:"column:cliente_telefone" json:"cliente_telefone" form:"cliente_telefone"`
	BuyerZip        string `gorm:"column:cliente_cep" json:"cliente_cep" form:"cliente_cep"`
	BuyerStreet     string `gorm:"column:cliente_rua" json:"cliente_rua" form:"cliente_rua"`
	BuyerNumber     string `gorm:"column:cliente_numero" json:"cliente_numero" form:"cliente_numero"`
	BuyerComplement string `gorm:"column:cliente_complemento" json:"cliente_complemento" form:"cliente_complemento"`
	BuyerDistrict   string `gorm:"column:cliente_bairro" json:"cliente_bairro" form:"cliente_bairro"`
	BuyerCity       string `gorm:"column:cliente_cidade" json:"cliente_cidade" form:"cliente_cidade"`
	BuyerState      string `gorm:"column:cliente_estado" json:"cliente_estado" form:"cliente_estado"`

	Amount float64 `gorm:"column:valor;type:decimal(10,2);not null" json:"valor"`
	Status string  `gorm:"column:status;not null;default:'pending';index" json:"status"`

	// PixQRCode guarda a imagem do QR como data-URL PNG; se a renderização
	// falhar, guarda o próprio payload Pix.
	PixQRCode        string `gorm:"column:pix_qrcode;type:text" json:"pix_qrcode"`
	PixCode          string `gorm:"column:pix_codigo;type:text" json:"pix_codigo"`
	PixTransactionID string `gorm:"column:pix_txid;unique_index" json:"pix_txid"`

	CreatedAt *time.Time `gorm:"column:criado_em" json:"criado_em"`
	PaidAt    *time.Time `gorm:"column:pago_em" json:"pago_em"`
}

func (Sale) TableName() string {
	return "vendas"
}
