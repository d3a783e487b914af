package config

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go-commodity-market/domain"
	"go-commodity-market/factory"
	_ "modernc.org/sqlite"
)

// catalogFile the shape of a catalog file, e.g. in YAML:
//
//	commodities:
//	  - name: Widget
//	    valuation: 10
//	    average: 9.5
//	aliases:
//	  - name: Gold
//	    code: XAU
//
// Aliases are a list because viper lower-cases map keys.
type catalogFile struct {
	Commodities []struct {
		Name      string `mapstructure:"name"`
		Valuation string `mapstructure:"valuation"`
		Average   string `mapstructure:"average"`
	} `mapstructure:"commodities"`
	Aliases []struct {
		Name string `mapstructure:"name"`
		Code string `mapstructure:"code"`
	} `mapstructure:"aliases"`
}

// Catalog a loaded commodity catalog
type Catalog struct {
	// Factory resolves commodity names from the catalog
	Factory factory.Factory

	// Aliases maps commodity names to currency codes for live valuation
	Aliases map[string]domain.Currency

	close func() error
}

// Close releases the catalog's database, if any.
func (c *Catalog) Close() error {
	if c.close == nil {
		return nil
	}
	return c.close()
}

// LoadCatalog loads the catalog at path. Files ending in .db or .sqlite are
// opened as SQLite databases; anything else is read with viper, so YAML, JSON
// and TOML all work. An empty path yields a catalog of Federal Reserve Notes only.
func LoadCatalog(ctx context.Context, path string) (*Catalog, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case path == "":
		return &Catalog{Factory: factory.NewCatalog(), Aliases: map[string]domain.Currency{}}, nil
	case ext == ".db" || ext == ".sqlite":
		return loadSQLCatalog(ctx, path)
	default:
		return loadCatalogFile(path)
	}
}

func loadCatalogFile(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	commodities := make([]domain.Commodity, 0, len(file.Commodities))
	for i, c := range file.Commodities {
		if c.Name == "" {
			return nil, fmt.Errorf("catalog entry %d: %w: missing name", i, domain.ErrInvalidInput)
		}
		valuation, err := domain.ParseQuantity(c.Valuation)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q valuation: %w", c.Name, err)
		}
		commodity := domain.NewCommodity(c.Name, valuation)
		if c.Average != "" {
			if commodity.AverageValuation, err = domain.ParseQuantity(c.Average); err != nil {
				return nil, fmt.Errorf("catalog entry %q average: %w", c.Name, err)
			}
		}
		if commodity.CurrentValuation.IsNegative() || commodity.AverageValuation.IsNegative() {
			return nil, fmt.Errorf("catalog entry %q: %w: negative valuation", c.Name, domain.ErrOutOfRange)
		}
		commodities = append(commodities, commodity)
	}

	aliases := make(map[string]domain.Currency, len(file.Aliases))
	for _, a := range file.Aliases {
		aliases[a.Name] = domain.Currency(strings.ToUpper(a.Code))
	}

	return &Catalog{Factory: factory.NewCatalog(commodities...), Aliases: aliases}, nil
}

func loadSQLCatalog(ctx context.Context, path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	catalog := factory.NewSQLCatalog(db)
	if err := catalog.CreateSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return &Catalog{
		Factory: factory.Chain(catalog, factory.NewCatalog()),
		Aliases: map[string]domain.Currency{},
		close:   db.Close,
	}, nil
}
