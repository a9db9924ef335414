package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config armazena as configurações do Anim4DC.
// Os valores padrão reproduzem os limites do hardware alvo original
// (Dreamcast, 16MB de RAM total).
type Config struct {
	// Capacidades (arrays de tamanho fixo no original)
	MaxKeyframes  int `json:"max_keyframes"`  // Keyframes por animação
	MaxAnimations int `json:"max_animations"` // Animações por modelo
	MaxInstances  int `json:"max_instances"`  // Instâncias para benchmarking
	MaxNameLength int `json:"max_name_length"`

	// Amostragem do baking
	SampleRate      float32 `json:"sample_rate"`      // FPS assumido da animação esquelética
	StrideThreshold int32   `json:"stride_threshold"` // Acima disso usa o passo longo
	StrideLong      int32   `json:"stride_long"`      // Captura a cada N frames (animações longas)
	StrideShort     int32   `json:"stride_short"`     // Captura a cada N frames (animações curtas)

	// Sistema LOD (distâncias em unidades de mundo; comparações usam o quadrado)
	LODNearDist float32 `json:"lod_near_dist"`
	LODMidDist  float32 `json:"lod_mid_dist"`
	LODCullDist float32 `json:"lod_cull_dist"`

	// Nomes atribuídos às animações na ordem do baking.
	// Além do tamanho da lista, a animação recebe "Unknown".
	AnimationNames []string `json:"animation_names"`

	// Orçamento de memória para keyframes + buffer de interpolação (bytes).
	// Exceder o orçamento gera apenas um aviso no log, nunca rejeita um bake.
	MemoryBudgetBytes int `json:"memory_budget_bytes"`

	// Janela do demo
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	WindowTitle  string `json:"window_title"`
	TargetFPS    int32  `json:"target_fps"`
	Fullscreen   bool   `json:"fullscreen"`

	// Cache de bakes (SQLite). Vazio = diretório do executável.
	CacheDir string `json:"cache_dir"`

	// Endereço do servidor de estatísticas (WebSocket). Vazio = desativado.
	StatsAddr string `json:"stats_addr"`

	// Debug
	ShowDebugInfo bool `json:"show_debug_info"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		MaxKeyframes:  20,
		MaxAnimations: 8,
		MaxInstances:  25,
		MaxNameLength: 32,

		SampleRate:      20.0,
		StrideThreshold: 40,
		StrideLong:      8,
		StrideShort:     4,

		LODNearDist: 80.0,
		LODMidDist:  120.0,
		LODCullDist: 200.0,

		AnimationNames: []string{
			"Survey", "Walk", "Run", "Jump", "Idle", "Attack", "Death", "Custom",
		},

		MemoryBudgetBytes: 1024 * 1024, // 1 MB para os keyframes de um modelo

		WindowWidth:  1280,
		WindowHeight: 720,
		WindowTitle:  "Anim4DC Fox Demo",
		TargetFPS:    60,
		Fullscreen:   false,

		CacheDir:  "",
		StatsAddr: "",

		ShowDebugInfo: false,
	}
}

// configPath retorna o caminho do arquivo de configuração.
func configPath() string {
	execDir, err := os.Executable()
	if err != nil {
		return "anim4dc.json"
	}
	return filepath.Join(filepath.Dir(execDir), "anim4dc.json")
}

// Load carrega as configurações de um arquivo JSON.
// Se o arquivo não existir, retorna as configurações padrão.
func Load() *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}

// Save salva as configurações em um arquivo JSON.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath(), data, 0644)
}
