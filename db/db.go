package db

import (
	"os"
	"path/filepath"

	"venditto/config"
	"venditto/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Connect abre a conexão (sqlite3 por padrão, postgres em produção) e aplica o
// automigrate das três tabelas. Os dois backends atendem o mesmo contrato de
// storage; a escolha é só configuração.
func Connect(cfg config.Configuration) (*gorm.DB, error) {
	var (
		database *gorm.DB
		err      error
	)

	if cfg.Database == "postgres" || cfg.Database == "postgresql" {
		log.Info("utilizando conexão com o postgresql...")
		path := "host=" + cfg.DbHost + " port=" + cfg.DbPort
		path += " user=" + cfg.DbUser + " dbname=" + cfg.DbName
		path += " password=" + cfg.DbPass
		database, err = gorm.Open("postgres", path)
	} else {
		log.Info("utilizando conexão com o sqlite3...")
		if dir := filepath.Dir(cfg.SqlitePath); dir != "." {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				return nil, errors.Wrap(mkErr, "criar diretório do sqlite")
			}
		}
		database, err = gorm.Open("sqlite3", cfg.SqlitePath)
	}
	if err != nil {
		return nil, errors.Wrap(err, "abrir conexão com o banco")
	}

	database.LogMode(cfg.DebugSQL)

	if err := Migrate(database); err != nil {
		database.Close()
		return nil, err
	}

	return database, nil
}

// Migrate cria/ajusta o schema. No postgres também amarra as FKs com cascade
// (produto -> planos -> vendas); o sqlite não suporta ALTER TABLE para isso.
func Migrate(database *gorm.DB) error {
	err := database.AutoMigrate(
		&models.Product{},
		&models.Plan{},
		&models.Sale{},
	).Error
	if err != nil {
		return errors.Wrap(err, "automigrate")
	}

	if database.Dialect().GetName() == "postgres" {
		if err := database.Model(&models.Plan{}).
			AddForeignKey("produto_id", "produtos(id)", "CASCADE", "CASCADE").Error; err != nil {
			return errors.Wrap(err, "fk planos.produto_id")
		}
		if err := database.Model(&models.Sale{}).
			AddForeignKey("plano_id", "planos(id)", "CASCADE", "CASCADE").Error; err != nil {
			return errors.Wrap(err, "fk vendas.plano_id")
		}
	}

	return nil
}
