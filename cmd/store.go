package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/odysseus-imc/capexdb/internal/iodb"
	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/db"
)

// openStore connects to the configured store. With needSchema the store
// must already have tables.
func openStore(ctx context.Context, needSchema bool) (db.Operator, error) {
	op := iodb.NewOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}
	if !needSchema {
		return op, nil
	}

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		_ = op.Close()
		return nil, err
	}
	if !hasTables {
		_ = op.Close()
		return nil, iodb.EmptyDatabaseError()
	}
	return op, nil
}

// storeLabel describes the configured store for console messages.
func storeLabel() string {
	if cfg.Database.Driver == "postgres" {
		return fmt.Sprintf("%s@%s:%d/%s",
			cfg.Database.User, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.Database)
	}
	return cfg.Database.Path
}

func parseID(name, s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, capex.ValidationError(name, "must be a positive integer")
	}
	return uint(id), nil
}
