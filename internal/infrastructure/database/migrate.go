package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema/schema.sql
var schemaSQL string

// Migrate はスキーマを適用します。全文がIF NOT EXISTSのため繰り返し実行できます
func (c *PostgresClient) Migrate(ctx context.Context) error {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	// 複数文を含むためシンプルプロトコルで実行する
	if _, err := conn.Conn().PgConn().Exec(ctx, schemaSQL).ReadAll(); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
