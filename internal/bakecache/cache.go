// Package bakecache persiste clipes baked em SQLite para que execuções
// repetidas do mesmo modelo pulem o baking (a fase mais cara de CPU).
// O núcleo de animação continua totalmente em memória; o cache é uma camada
// opcional por fora, acionada pelo aplicativo.
package bakecache

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Dubnium32x/anim4dc/pkg/vertexanim"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const CurrentFormatVersion = 1

// ClipRecord representa o esquema do banco para um clipe baked.
type ClipRecord struct {
	ModelKey    string `gorm:"primaryKey"` // Caminho do modelo + mtime
	ClipIndex   int    `gorm:"primaryKey;autoIncrement:false"`
	Name        string
	Duration    float32
	Looping     bool
	VertexCount int32
	Data        []byte    // Keyframes serializados em GOB
	UpdatedAt   time.Time // Para controle interno do GORM
}

// CacheMetadata armazena informações globais do cache no banco.
type CacheMetadata struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// Cache encapsula a conexão SQLite do cache de bake.
type Cache struct {
	db *gorm.DB
}

// Open abre (ou cria) o banco do cache e roda migrações.
// Diretório vazio usa o diretório do executável.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		if execPath, err := os.Executable(); err == nil {
			dir = filepath.Dir(execPath)
		} else {
			dir = "."
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "bakecache.a4c")

	// Logger silencioso em produção
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no SQLite: %w", err)
	}

	if err := db.AutoMigrate(&ClipRecord{}, &CacheMetadata{}); err != nil {
		return nil, fmt.Errorf("falha na migração do banco: %w", err)
	}

	db.Save(&CacheMetadata{Key: "FormatVersion", Value: fmt.Sprint(CurrentFormatVersion)})

	log.Printf("[BakeCache] Banco de dados SQLite aberto: %s", dbPath)
	return &Cache{db: db}, nil
}

// ModelKey deriva a chave de cache de um arquivo de modelo: caminho + mtime,
// então qualquer alteração no arquivo invalida as entradas antigas.
func ModelKey(modelPath string) string {
	info, err := os.Stat(modelPath)
	if err != nil {
		return modelPath
	}
	return fmt.Sprintf("%s@%d", modelPath, info.ModTime().Unix())
}

// SaveBake grava todos os clipes de um modelo, substituindo qualquer entrada
// anterior com a mesma chave.
func (c *Cache) SaveBake(modelKey string, vertexCount int32, clips []vertexanim.VertexAnimation) error {
	if c.db == nil {
		return fmt.Errorf("banco de dados não inicializado")
	}

	// Remove o bake anterior desta chave antes de regravar.
	if err := c.db.Where("model_key = ?", modelKey).Delete(&ClipRecord{}).Error; err != nil {
		return fmt.Errorf("falha ao limpar bake anterior: %w", err)
	}

	for i := range clips {
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(clips[i].Keyframes); err != nil {
			return fmt.Errorf("falha ao serializar keyframes do clipe %d: %w", i, err)
		}

		rec := ClipRecord{
			ModelKey:    modelKey,
			ClipIndex:   i,
			Name:        clips[i].Name,
			Duration:    clips[i].Duration,
			Looping:     clips[i].Looping,
			VertexCount: vertexCount,
			Data:        buf.Bytes(),
		}
		if err := c.db.Save(&rec).Error; err != nil {
			return fmt.Errorf("falha ao salvar clipe %d: %w", i, err)
		}
	}

	log.Printf("[BakeCache] %d clipes salvos para %s", len(clips), modelKey)
	return nil
}

// LoadBake carrega os clipes do modelo, em ordem de índice. Retorna
// gorm.ErrRecordNotFound embrulhado se a chave não tem entradas.
func (c *Cache) LoadBake(modelKey string) ([]vertexanim.VertexAnimation, int32, error) {
	if c.db == nil {
		return nil, 0, fmt.Errorf("banco de dados não inicializado")
	}

	var records []ClipRecord
	if err := c.db.Where("model_key = ?", modelKey).Order("clip_index").Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("falha ao consultar clipes: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, fmt.Errorf("nenhum bake para %s: %w", modelKey, gorm.ErrRecordNotFound)
	}

	clips := make([]vertexanim.VertexAnimation, 0, len(records))
	vertexCount := records[0].VertexCount
	for i := range records {
		var keyframes []vertexanim.Keyframe
		if err := gob.NewDecoder(bytes.NewReader(records[i].Data)).Decode(&keyframes); err != nil {
			return nil, 0, fmt.Errorf("falha ao desserializar clipe %d: %w", records[i].ClipIndex, err)
		}
		clips = append(clips, vertexanim.VertexAnimation{
			Name:      records[i].Name,
			Keyframes: keyframes,
			Duration:  records[i].Duration,
			Looping:   records[i].Looping,
		})
	}

	log.Printf("[BakeCache] %d clipes carregados para %s", len(clips), modelKey)
	return clips, vertexCount, nil
}

// Close fecha a conexão com o banco.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
