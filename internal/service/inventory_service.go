package service

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/stationery-next/internal/cache"
	"github.com/stationery-next/internal/constants"
	"github.com/stationery-next/internal/logger"
	"github.com/stationery-next/internal/models"
	"github.com/stationery-next/internal/repository"

	"github.com/gabriel-vasile/mimetype"
)

// IngestItem 入库条目
type IngestItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// IngestResult 入库结果
type IngestResult struct {
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Items   int    `json:"items"`
	Path    string `json:"path"`
}

// InventoryUpserter 入库写入策略
type InventoryUpserter interface {
	Name() string
	Upsert(ctx context.Context, items []repository.InventoryUpsertItem, defaultThreshold int) (created int, updated int, err error)
}

// InventoryOptions 入库配置
type InventoryOptions struct {
	DefaultLowStockThreshold int
	MaxUploadBytes           int64
}

// InventoryService 入库服务
type InventoryService struct {
	upserter  InventoryUpserter
	extractor TextExtractor
	options   InventoryOptions
}

// NewInventoryService 创建入库服务
func NewInventoryService(upserter InventoryUpserter, extractor TextExtractor, options InventoryOptions) *InventoryService {
	if extractor == nil {
		extractor = NewPlainTextExtractor(false)
	}
	return &InventoryService{upserter: upserter, extractor: extractor, options: options}
}

// NewDefaultInventoryUpserter 单事务批量写入优先，失败时逐条写入
func NewDefaultInventoryUpserter(inventoryRepo repository.InventoryRepository, productRepo repository.ProductRepository) InventoryUpserter {
	return NewFallbackInventoryUpserter(
		NewBulkInventoryUpserter(inventoryRepo),
		NewSingleInventoryUpserter(productRepo),
	)
}

// Reconcile 对账入库：同名（忽略大小写）合并后，未知商品新建，已有商品累加库存
// 新建商品价格为 0 且不在前台展示，需管理员定价后上架
func (s *InventoryService) Reconcile(ctx context.Context, items []IngestItem, defaultThreshold int) (*IngestResult, error) {
	if defaultThreshold < 0 {
		defaultThreshold = s.options.DefaultLowStockThreshold
	}
	merged := aggregateIngestItems(items)
	result := &IngestResult{Items: len(merged), Path: s.upserter.Name()}
	if len(merged) == 0 {
		return result, nil
	}

	created, updated, err := s.upserter.Upsert(ctx, merged, defaultThreshold)
	if err != nil {
		logger.Errorw("inventory_reconcile_failed", "items", len(merged), "error", err)
		return nil, err
	}
	result.Created = created
	result.Updated = updated

	if err := cache.InvalidateCatalog(ctx); err != nil {
		logger.Warnw("inventory_cache_invalidate_failed", "error", err)
	}
	logger.Infow("inventory_reconciled",
		"items", result.Items,
		"created", created,
		"updated", updated,
		"default_threshold", defaultThreshold,
	)
	return result, nil
}

// ExtractItems 从上传文档中提取入库条目
func (s *InventoryService) ExtractItems(ctx context.Context, filename, contentType string, data []byte) ([]IngestItem, error) {
	if len(data) == 0 {
		return nil, ErrNoFileProvided
	}
	if s.options.MaxUploadBytes > 0 && int64(len(data)) > s.options.MaxUploadBytes {
		return nil, ErrIngestUploadTooLarge
	}
	text, err := s.extractor.Extract(ctx, filename, contentType, data)
	if err != nil {
		return nil, err
	}
	items := ParseExtractedText(text)
	if len(items) == 0 {
		return nil, ErrNoRecognizableItems
	}
	return items, nil
}

// ImportDocument 提取文档后直接入库
func (s *InventoryService) ImportDocument(ctx context.Context, filename, contentType string, data []byte, defaultThreshold int) (*IngestResult, error) {
	items, err := s.ExtractItems(ctx, filename, contentType, data)
	if err != nil {
		return nil, err
	}
	return s.Reconcile(ctx, items, defaultThreshold)
}

func aggregateIngestItems(items []IngestItem) []repository.InventoryUpsertItem {
	merged := make([]repository.InventoryUpsertItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" || item.Quantity <= 0 {
			continue
		}
		if utf8.RuneCountInString(name) > maxProductNameLength {
			logger.Warnw("inventory_item_name_too_long", "name_prefix", truncateRunes(name, 32), "quantity", item.Quantity)
			continue
		}
		key := strings.ToLower(name)
		if pos, ok := index[key]; ok {
			merged[pos].Quantity += item.Quantity
			continue
		}
		index[key] = len(merged)
		merged = append(merged, repository.InventoryUpsertItem{Name: name, Quantity: item.Quantity})
	}
	return merged
}

// ParseExtractedText 解析识别文本：每行 "名称, 数量" 或 "名称 数量"，数量为行尾整数
func ParseExtractedText(text string) []IngestItem {
	results := make([]IngestItem, 0)
	index := make(map[string]int)
	add := func(name string, qty int) {
		name = strings.TrimSpace(name)
		if name == "" || qty <= 0 {
			return
		}
		key := strings.ToLower(name)
		if pos, ok := index[key]; ok {
			results[pos].Quantity += qty
			return
		}
		index[key] = len(results)
		results = append(results, IngestItem{Name: name, Quantity: qty})
	}

	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	for _, raw := range strings.Split(normalized, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || !strings.ContainsFunc(line, unicode.IsLetter) {
			continue
		}
		cleaned := strings.ReplaceAll(line, "\t", " ")
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")

		parts := splitNonEmpty(cleaned, func(r rune) bool {
			return r == ',' || r == ';' || r == '|'
		})
		if len(parts) >= 2 {
			if qty, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
				add(strings.Join(parts[:len(parts)-1], ", "), qty)
				continue
			}
		}

		tokens := strings.Fields(cleaned)
		if len(tokens) >= 2 {
			if qty, err := strconv.Atoi(tokens[len(tokens)-1]); err == nil {
				add(strings.Join(tokens[:len(tokens)-1], " "), qty)
			}
		}
	}
	return results
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}

func splitNonEmpty(value string, sep func(rune) bool) []string {
	fields := strings.FieldsFunc(value, sep)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// TextExtractor 文档文本提取
type TextExtractor interface {
	Extract(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// PlainTextExtractor 支持纯文本与 CSV；图片与 PDF 需要 OCR 引擎
type PlainTextExtractor struct {
	pdfOCREnabled bool
}

// NewPlainTextExtractor 创建文本提取器
func NewPlainTextExtractor(pdfOCREnabled bool) *PlainTextExtractor {
	return &PlainTextExtractor{pdfOCREnabled: pdfOCREnabled}
}

var (
	plainTextExtensions = map[string]struct{}{".txt": {}, ".csv": {}, ".tsv": {}}
	imageExtensions     = map[string]struct{}{".png": {}, ".jpg": {}, ".jpeg": {}, ".bmp": {}, ".tif": {}, ".tiff": {}}
)

// Extract 按扩展名判断，缺失时按内容识别
func (e *PlainTextExtractor) Extract(_ context.Context, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNoFileProvided
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = extensionFromContent(contentType, data)
	}
	switch {
	case ext == ".pdf":
		if !e.pdfOCREnabled {
			return "", ErrPDFOCRDisabled
		}
		return "", ErrOCRUnavailable
	case isKnownExtension(imageExtensions, ext):
		return "", ErrOCRUnavailable
	case isKnownExtension(plainTextExtensions, ext):
		return string(data), nil
	default:
		return "", ErrUnsupportedFileType
	}
}

func isKnownExtension(set map[string]struct{}, ext string) bool {
	_, ok := set[ext]
	return ok
}

func extensionFromContent(contentType string, data []byte) string {
	detected := mimetype.Detect(data)
	switch {
	case detected.Is("application/pdf"):
		return ".pdf"
	case strings.HasPrefix(detected.String(), "image/"):
		return detected.Extension()
	case detected.Is("text/csv"):
		return ".csv"
	case detected.Is("text/plain"):
		return ".txt"
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "text/") {
		return ".txt"
	}
	return ""
}

// fallbackInventoryUpserter 批量写入任意失败时逐条写入
type fallbackInventoryUpserter struct {
	preferred InventoryUpserter
	fallback  InventoryUpserter
}

// NewFallbackInventoryUpserter 组合优先/备用写入策略
func NewFallbackInventoryUpserter(preferred, fallback InventoryUpserter) InventoryUpserter {
	return &fallbackInventoryUpserter{preferred: preferred, fallback: fallback}
}

func (u *fallbackInventoryUpserter) Name() string {
	return u.preferred.Name() + "+" + u.fallback.Name()
}

func (u *fallbackInventoryUpserter) Upsert(ctx context.Context, items []repository.InventoryUpsertItem, defaultThreshold int) (int, int, error) {
	created, updated, err := u.preferred.Upsert(ctx, items, defaultThreshold)
	if err == nil {
		return created, updated, nil
	}
	logger.Warnw("inventory_preferred_path_failed",
		"path", u.preferred.Name(),
		"fallback", u.fallback.Name(),
		"items", len(items),
		"error", err,
	)
	return u.fallback.Upsert(ctx, items, defaultThreshold)
}

// bulkInventoryUpserter 单事务批量写入
type bulkInventoryUpserter struct {
	repo repository.InventoryRepository
}

// NewBulkInventoryUpserter 创建批量写入策略
func NewBulkInventoryUpserter(repo repository.InventoryRepository) InventoryUpserter {
	return &bulkInventoryUpserter{repo: repo}
}

func (u *bulkInventoryUpserter) Name() string {
	return "bulk"
}

func (u *bulkInventoryUpserter) Upsert(ctx context.Context, items []repository.InventoryUpsertItem, defaultThreshold int) (int, int, error) {
	return u.repo.BulkUpsert(ctx, items, defaultThreshold)
}

// singleInventoryUpserter 逐条查找并写入，单条写入本身保持原子
type singleInventoryUpserter struct {
	productRepo repository.ProductRepository
}

// NewSingleInventoryUpserter 创建逐条写入策略
func NewSingleInventoryUpserter(productRepo repository.ProductRepository) InventoryUpserter {
	return &singleInventoryUpserter{productRepo: productRepo}
}

func (u *singleInventoryUpserter) Name() string {
	return "single"
}

func (u *singleInventoryUpserter) Upsert(_ context.Context, items []repository.InventoryUpsertItem, defaultThreshold int) (int, int, error) {
	created, updated := 0, 0
	for _, item := range items {
		existing, err := u.productRepo.GetByNameFold(item.Name)
		if err != nil {
			return created, updated, err
		}
		if existing != nil {
			if _, err := u.productRepo.IncrementStock(existing.ID, item.Quantity, defaultThreshold); err != nil {
				return created, updated, err
			}
			updated++
			continue
		}
		product := &models.Product{
			Name:              item.Name,
			Category:          constants.IngestDefaultCategory,
			Stock:             item.Quantity,
			LowStockThreshold: defaultThreshold,
			IsVisible:         false,
		}
		if err := u.productRepo.Create(product); err != nil {
			return created, updated, err
		}
		created++
	}
	return created, updated, nil
}
