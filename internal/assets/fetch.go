package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter"
	"go.uber.org/zap"

	"github.com/Faultbox/heightforge/internal/logger"
)

// Fetch downloads a texture pack from src into dst unless dst already holds
// every name in want. src is any go-getter address: a local path, an
// http(s) archive URL, git::, s3:: and so on.
func Fetch(ctx context.Context, src, dst string, want ...string) error {
	log := logger.Named("assets")

	if len(want) > 0 && len(NewManager(dst).Missing(want...)) == 0 {
		log.Debug("Texture pack already present", zap.String("dir", dst))
		return nil
	}

	pwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("fetching %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(filepath.Clean(dst)), 0755); err != nil {
		return fmt.Errorf("fetching %s: %w", src, err)
	}

	log.Info("Fetching texture pack", zap.String("source", src), zap.String("dir", dst))
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeAny,
	}
	if err := client.Get(); err != nil {
		return fmt.Errorf("fetching %s: %w", src, err)
	}

	if missing := NewManager(dst).Missing(want...); len(missing) > 0 {
		return fmt.Errorf("%w: texture pack %s lacks %v", ErrNotFound, src, missing)
	}
	return nil
}
