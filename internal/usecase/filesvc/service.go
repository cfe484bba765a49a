package filesvc

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/sir_venger/filedrop/internal/models"
)

type (
	// Index: реестр key -> path, через который загрузки становятся видимыми.
	Index interface {
		Insert(key, path string)
		Lookup(key string) (string, bool)
		Len() int
		Paths() map[string]struct{}
	}

	// Catalog хранилище метаданных загрузок
	Catalog interface {
		Get(ctx context.Context, key string) (models.FileRecord, error)
		Save(ctx context.Context, rec models.FileRecord) error
	}

	// Service объединяет операции по загрузке, выдаче и обслуживанию файлов.
	Service interface {
		Upload(ctx context.Context, r io.Reader, name string) (models.UploadResult, error)
		Open(ctx context.Context, key string) (models.Download, error)
		Inspect(ctx context.Context, key string) (models.Download, error)
		List(ctx context.Context) ([]string, error)
		Stats(ctx context.Context) (Stats, error)
		Sweep(ctx context.Context, opts SweepOptions) (int, error)
	}
)

// Naming определяет, под каким именем файл ложится на диск.
type Naming string

const (
	// NamingKey: файл называется сгенерированным ключом.
	NamingKey Naming = "key"
	// NamingName: файл называется именем, присланным клиентом.
	NamingName Naming = "name"
)

type Deps struct {
	Index     Index
	Catalog   Catalog
	Keys      KeyGenerator
	Tamper    Tamperer
	UploadDir string
	Naming    Naming
	Log       *slog.Logger
}

type Files struct {
	Deps
}

// New конструирует файловый сервис с заданными зависимостями.
func New(deps Deps) *Files {
	if deps.Keys == nil {
		deps.Keys = UUIDKeys{}
	}
	if deps.Naming == "" {
		deps.Naming = NamingKey
	}
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	return &Files{Deps: deps}
}

var _ Service = (*Files)(nil)

// targetPath вычисляет итоговый путь файла в каталоге загрузок.
func (s *Files) targetPath(key, name string) string {
	if s.Naming == NamingName {
		return filepath.Join(s.UploadDir, name)
	}
	return filepath.Join(s.UploadDir, key)
}
