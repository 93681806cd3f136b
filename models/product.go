package models

import "time"

// Product representa um produto cadastrado pelo vendedor.
// Depois de criado o produto é imutável: a API não expõe update nem delete.
type Product struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name        string     `gorm:"column:nome;not null" json:"nome" form:"nome"`
	Description string     `gorm:"column:descricao;type:text" json:"descricao" form:"descricao"`
	Image       string     `gorm:"column:imagem;type:text" json:"imagem" form:"imagem"`
	CreatedAt   *time.Time `gorm:"column:criado_em" json:"criado_em"`

	// Plans é carregado via Preload na listagem de produtos.
	Plans []Plan `gorm:"foreignkey:ProductID" json:"planos"`
}

func (Product) TableName() string {
	return "produtos"
}
