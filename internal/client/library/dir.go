package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/photosync/internal/client/models"
	"github.com/dmitrijs2005/photosync/internal/common"
	"github.com/dmitrijs2005/photosync/internal/logging"
)

var mediaExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".heic": {}, ".heif": {},
	".webp": {}, ".bmp": {}, ".tif": {}, ".tiff": {},
	".mp4": {}, ".mov": {}, ".m4v": {}, ".avi": {}, ".mkv": {},
}

// IsMedia reports whether name has a recognised photo or video extension.
func IsMedia(name string) bool {
	_, ok := mediaExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// DirProvider serves media files found under a directory tree. Asset ids are
// slash-separated paths relative to the root.
type DirProvider struct {
	root string
	log  logging.Logger

	mu      sync.Mutex
	pending *scanResult
}

// scanResult is a walk done by RequestPermission, kept for the FetchLatest
// call that normally follows it.
type scanResult struct {
	refs    []models.AssetRef
	skipped int
}

// walkDir is a test seam.
var walkDir = filepath.WalkDir

func NewDirProvider(root string, log logging.Logger) *DirProvider {
	return &DirProvider{root: root, log: log}
}

// RequestPermission is denied when the root cannot be listed and limited when
// some directory below it cannot.
func (p *DirProvider) RequestPermission(ctx context.Context) models.PermissionState {
	if _, err := os.ReadDir(p.root); err != nil {
		p.log.Warn(ctx, "media library not readable", "root", p.root, "error", err)
		return models.PermissionDenied
	}

	refs, skipped, err := p.scan(ctx)
	if err != nil {
		return models.PermissionDenied
	}

	p.mu.Lock()
	p.pending = &scanResult{refs: refs, skipped: skipped}
	p.mu.Unlock()

	if skipped > 0 {
		return models.PermissionLimited
	}
	return models.PermissionFull
}

func (p *DirProvider) FetchLatest(ctx context.Context, limit int) ([]models.AssetRef, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	refs, skipped, err := p.takeOrScan(ctx)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		p.log.Debug(ctx, "skipped unreadable entries", "count", skipped)
	}

	sort.Slice(refs, func(i, j int) bool {
		if !refs[i].ModTime.Equal(refs[j].ModTime) {
			return refs[i].ModTime.After(refs[j].ModTime)
		}
		return refs[i].ID < refs[j].ID
	})

	if len(refs) > limit {
		refs = refs[:limit]
	}
	return refs, nil
}

func (p *DirProvider) LoadData(ctx context.Context, ref models.AssetRef) ([]byte, error) {
	full, err := p.resolve(ref.ID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrAssetRead, ref.ID, err)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrAssetRead, ref.ID, err)
	}
	return data, nil
}

// takeOrScan reuses the walk of the preceding RequestPermission once, and
// walks the tree again otherwise.
func (p *DirProvider) takeOrScan(ctx context.Context) ([]models.AssetRef, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	p.mu.Lock()
	pending := p.pending
	p.pending = nil
	p.mu.Unlock()

	if pending != nil {
		return pending.refs, pending.skipped, nil
	}
	return p.scan(ctx)
}

// resolve maps an asset id back to a path, refusing ids outside the root.
func (p *DirProvider) resolve(id string) (string, error) {
	if id == "" || !fs.ValidPath(id) || path.Clean(id) != id {
		return "", fmt.Errorf("%w: invalid asset id %q", common.ErrAssetRead, id)
	}
	return filepath.Join(p.root, filepath.FromSlash(id)), nil
}

// scan walks the tree and returns every media file. Unreadable entries below
// the root are counted in skipped rather than failing the walk.
func (p *DirProvider) scan(ctx context.Context) (refs []models.AssetRef, skipped int, err error) {
	err = walkDir(p.root, func(fullPath string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if fullPath == p.root {
				return walkErr
			}
			skipped++
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !IsMedia(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			skipped++
			return nil
		}
		rel, err := filepath.Rel(p.root, fullPath)
		if err != nil {
			return err
		}

		refs = append(refs, models.AssetRef{
			ID:       filepath.ToSlash(rel),
			Filename: d.Name(),
			Size:     info.Size(),
			ModTime:  info.ModTime(),
		})
		return nil
	})
	if err != nil && !errors.Is(err, fs.SkipAll) {
		return nil, skipped, fmt.Errorf("scan %s: %w", p.root, err)
	}
	return refs, skipped, nil
}
