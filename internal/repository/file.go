package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/mmeshcher/makburgers-bot/internal/model"
	"github.com/mmeshcher/makburgers-bot/internal/validation"
)

// ErrCorruptSnapshot возвращается, если файл снимка не удаётся разобрать.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// FileStore хранит снимок профилей в JSON-файле. Каждое сохранение перезаписывает файл целиком.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore создаёт файловое хранилище по указанному пути.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load читает снимок. Отсутствующий файл даёт пустой набор без ошибки,
// повреждённый файл даёт пустой набор и ErrCorruptSnapshot.
func (s *FileStore) Load(_ context.Context) (map[int64]model.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make(map[int64]model.UserProfile)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return res, nil
		}
		return res, fmt.Errorf("read snapshot: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return res, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return res, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	for key, msg := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}

		// Старый формат записи содержит только phone, state, cart и language.
		var p model.UserProfile
		if err := json.Unmarshal(msg, &p); err != nil {
			continue
		}

		// Старый формат хранил номер в том виде, в каком его прислал Telegram.
		phone, err := validation.NormalizePhone(p.Phone)
		if err != nil {
			continue
		}

		p.ID = id
		p.Phone = phone
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			p.Name = p.Phone
		}
		res[id] = p
	}

	return res, nil
}

// Save записывает снимок во временный файл и переименовывает его поверх старого.
func (s *FileStore) Save(_ context.Context, profiles map[int64]model.UserProfile) error {
	data, err := json.MarshalIndent(profiles, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}

	return nil
}

// Close ничего не делает: файл открывается только на время операции.
func (s *FileStore) Close() error {
	return nil
}
