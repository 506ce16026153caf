package coverages

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"roster-service/internal/app/contracts"
	"roster-service/internal/app/models"
	"roster-service/internal/pkg/exceptions"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// coverageFile is the on-disk layout:
//
//	shifts:
//	  M08: [0, 0, 0, 0, 0, 0, 0, 0, 1, 1, ...]
type coverageFile struct {
	Shifts map[string]flowHours `yaml:"shifts"`
}

// flowHours keeps each mask on a single line when written back.
type flowHours []int

func (h flowHours) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range h {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: strconv.Itoa(v),
		})
	}
	return node, nil
}

type CoverageFileRepository struct {
	Fs   afero.Fs
	Path string
	mu   sync.Mutex
}

func NewCoverageFileRepository(fs afero.Fs, path string) contracts.CoverageRepository {
	return &CoverageFileRepository{
		Fs:   fs,
		Path: path,
	}
}

func (repo *CoverageFileRepository) FindAll(ctx context.Context) ([]models.ShiftCoverage, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	doc, err := repo.read(false)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(doc.Shifts))
	for code := range doc.Shifts {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	result := make([]models.ShiftCoverage, 0, len(codes))
	for _, code := range codes {
		result = append(result, models.ShiftCoverage{
			Code:  code,
			Hours: []int(doc.Shifts[code]),
		})
	}
	return result, nil
}

func (repo *CoverageFileRepository) FindByCode(ctx context.Context, code string) (*models.ShiftCoverage, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	doc, err := repo.read(false)
	if err != nil {
		return nil, err
	}

	hours, ok := doc.Shifts[code]
	if !ok {
		return nil, nil
	}
	return &models.ShiftCoverage{Code: code, Hours: []int(hours)}, nil
}

// Upsert rewrites the whole file. A missing file is created.
func (repo *CoverageFileRepository) Upsert(ctx context.Context, shiftCoverage *models.ShiftCoverage) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	doc, err := repo.read(true)
	if err != nil {
		return err
	}
	doc.Shifts[shiftCoverage.Code] = flowHours(shiftCoverage.Hours)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return exceptions.ErrCoverageFileWrite(err, repo.Path)
	}

	if dir := filepath.Dir(repo.Path); dir != "." {
		if err := repo.Fs.MkdirAll(dir, 0o755); err != nil {
			return exceptions.ErrCoverageFileWrite(err, repo.Path)
		}
	}

	tmpPath := repo.Path + ".tmp"
	if err := afero.WriteFile(repo.Fs, tmpPath, data, 0o644); err != nil {
		return exceptions.ErrCoverageFileWrite(err, repo.Path)
	}
	if err := repo.Fs.Rename(tmpPath, repo.Path); err != nil {
		return exceptions.ErrCoverageFileWrite(err, repo.Path)
	}
	return nil
}

func (repo *CoverageFileRepository) read(allowMissing bool) (*coverageFile, error) {
	doc := &coverageFile{}
	data, err := afero.ReadFile(repo.Fs, repo.Path)
	if err != nil {
		if allowMissing && errors.Is(err, os.ErrNotExist) {
			doc.Shifts = map[string]flowHours{}
			return doc, nil
		}
		return nil, exceptions.ErrCoverageFileRead(err, repo.Path)
	}

	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, exceptions.ErrCoverageFileRead(err, repo.Path)
	}
	if doc.Shifts == nil {
		doc.Shifts = map[string]flowHours{}
	}
	return doc, nil
}
