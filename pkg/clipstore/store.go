// Package clipstore 持久化保存编辑器中编写的剪辑
//
// 每个剪辑以单剪辑 YAML 文档的形式保存为 gdata 的一个对象属性，
// 另有一个索引属性记录全部剪辑名称。gdata 管理器为 nil 时退化为纯内存存储。
package clipstore

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/tween/pkg/config"
)

// ErrNotFound 剪辑不存在
var ErrNotFound = errors.New("clip not found")

// ErrInvalidName 剪辑名称不能作为存储属性名
var ErrInvalidName = errors.New("invalid clip name")

// 存储路径常量
const (
	clipsObject   = "clips"
	indexProperty = "_index"
)

// Store 剪辑存储
type Store struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	memory       map[string][]byte
	mu           sync.Mutex
}

// NewStore 创建剪辑存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
func NewStore(gdataManager *gdata.Manager) *Store {
	if gdataManager == nil {
		log.Printf("[ClipStore] no gdata manager, clips are kept in memory only")
	}
	return &Store{
		gdataManager: gdataManager,
		memory:       make(map[string][]byte),
	}
}

// Persistent 返回是否写入磁盘
func (s *Store) Persistent() bool {
	return s.gdataManager != nil
}

// Save 保存剪辑，同名剪辑会被覆盖
func (s *Store) Save(clip *config.ClipDef) error {
	if clip == nil {
		return fmt.Errorf("failed to save clip: nil clip")
	}
	if err := validateName(clip.Name); err != nil {
		return err
	}

	data, err := config.MarshalClipConfig(&config.ClipConfig{Clips: []config.ClipDef{*clip}})
	if err != nil {
		return fmt.Errorf("failed to marshal clip %q: %w", clip.Name, err)
	}
	// 保存前先验证，避免写入之后无法读回
	if _, err := config.ParseClipConfig(data); err != nil {
		return fmt.Errorf("clip %q is invalid: %w", clip.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gdataManager == nil {
		s.memory[clip.Name] = data
		return nil
	}

	if err := s.gdataManager.SaveObjectProp(clipsObject, clip.Name, data); err != nil {
		return fmt.Errorf("failed to save clip %q: %w", clip.Name, err)
	}

	names, err := s.loadIndex()
	if err != nil {
		return err
	}
	if !contains(names, clip.Name) {
		names = append(names, clip.Name)
		if err := s.saveIndex(names); err != nil {
			return err
		}
	}

	log.Printf("[ClipStore] clip %q saved", clip.Name)
	return nil
}

// Load 读取剪辑，不存在时返回 ErrNotFound
func (s *Store) Load(name string) (*config.ClipDef, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	data, err := s.read(name)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	doc, err := config.ParseClipConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse clip %q: %w", name, err)
	}
	clip, ok := doc.Clip(name)
	if !ok {
		return nil, fmt.Errorf("stored document does not contain clip %q: %w", name, ErrNotFound)
	}
	return clip, nil
}

// Exists 检查剪辑是否存在
func (s *Store) Exists(name string) bool {
	if validateName(name) != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gdataManager == nil {
		_, ok := s.memory[name]
		return ok
	}
	names, err := s.loadIndex()
	if err != nil {
		return false
	}
	return contains(names, name) && s.gdataManager.ObjectPropExists(clipsObject, name)
}

// Delete 删除剪辑，不存在时返回 ErrNotFound
//
// 持久化模式下只从索引中移除，并清空属性内容
func (s *Store) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gdataManager == nil {
		if _, ok := s.memory[name]; !ok {
			return fmt.Errorf("failed to delete clip %q: %w", name, ErrNotFound)
		}
		delete(s.memory, name)
		return nil
	}

	names, err := s.loadIndex()
	if err != nil {
		return err
	}
	idx := indexOf(names, name)
	if idx < 0 {
		return fmt.Errorf("failed to delete clip %q: %w", name, ErrNotFound)
	}
	names = append(names[:idx], names[idx+1:]...)
	if err := s.saveIndex(names); err != nil {
		return err
	}
	if err := s.gdataManager.SaveObjectProp(clipsObject, name, []byte{}); err != nil {
		return fmt.Errorf("failed to clear clip %q: %w", name, err)
	}

	log.Printf("[ClipStore] clip %q deleted", name)
	return nil
}

// Names 返回全部剪辑名称（已排序）
func (s *Store) Names() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var names []string
	if s.gdataManager == nil {
		for name := range s.memory {
			names = append(names, name)
		}
	} else {
		loaded, err := s.loadIndex()
		if err != nil {
			return nil, err
		}
		names = append(names, loaded...)
	}
	sort.Strings(names)
	return names, nil
}

// read 读取原始文档，调用方持有锁
func (s *Store) read(name string) ([]byte, error) {
	if s.gdataManager == nil {
		data, ok := s.memory[name]
		if !ok {
			return nil, fmt.Errorf("failed to load clip %q: %w", name, ErrNotFound)
		}
		return data, nil
	}

	names, err := s.loadIndex()
	if err != nil {
		return nil, err
	}
	if !contains(names, name) || !s.gdataManager.ObjectPropExists(clipsObject, name) {
		return nil, fmt.Errorf("failed to load clip %q: %w", name, ErrNotFound)
	}
	data, err := s.gdataManager.LoadObjectProp(clipsObject, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load clip %q: %w", name, err)
	}
	return data, nil
}

func (s *Store) loadIndex() ([]string, error) {
	if !s.gdataManager.ObjectPropExists(clipsObject, indexProperty) {
		return nil, nil
	}
	data, err := s.gdataManager.LoadObjectProp(clipsObject, indexProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to load clip index: %w", err)
	}
	var names []string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("failed to unmarshal clip index: %w", err)
	}
	return names, nil
}

func (s *Store) saveIndex(names []string) error {
	data, err := yaml.Marshal(names)
	if err != nil {
		return fmt.Errorf("failed to marshal clip index: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(clipsObject, indexProperty, data); err != nil {
		return fmt.Errorf("failed to save clip index: %w", err)
	}
	return nil
}

// validateName 名称只能包含字母、数字、'-' 和 '_'，且不能以 '_' 开头（保留给索引）
func validateName(name string) error {
	if name == "" || name[0] == '_' {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func contains(names []string, name string) bool {
	return indexOf(names, name) >= 0
}
