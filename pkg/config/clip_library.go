package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gonewx/tween/pkg/embedded"
)

// ClipLibrary 剪辑库
// 负责从嵌入资源加载全部剪辑文档，并按剪辑名称索引
type ClipLibrary struct {
	clips   map[string]*ClipDef // 按名称索引的剪辑
	sources map[string]string   // 剪辑名称 -> 来源文件
	mu      sync.RWMutex        // 读写锁（并发安全）
}

// NewClipLibrary 创建剪辑库
//
// 参数：
//   - path: 嵌入资源中的文件路径或目录路径
//   - 如果是文件路径（如 "data/clips/demo.yaml"），只加载该文件
//   - 如果是目录路径（如 "data/clips"），加载目录中所有 YAML 文件
//
// 返回：
//   - *ClipLibrary: 剪辑库实例
//   - error: 加载、解析或验证错误，以及跨文件重复的剪辑名称
func NewClipLibrary(path string) (*ClipLibrary, error) {
	// 1. 判断路径类型
	var files []string
	if _, err := embedded.ReadDir(path); err == nil {
		matched, err := embedded.Glob(path + "/*.yaml")
		if err != nil {
			return nil, fmt.Errorf("扫描目录 %s 失败: %w", path, err)
		}
		files = matched
	} else if embedded.Exists(path) {
		files = []string{path}
	} else {
		return nil, fmt.Errorf("无法访问路径 %s", path)
	}

	lib := &ClipLibrary{
		clips:   make(map[string]*ClipDef),
		sources: make(map[string]string),
	}

	// 2. 逐个加载
	for _, file := range files {
		if err := lib.loadFile(file); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// loadFile 加载单个剪辑文档并加入索引
func (l *ClipLibrary) loadFile(file string) error {
	data, err := embedded.ReadFile(file)
	if err != nil {
		return fmt.Errorf("无法读取剪辑文档 %s: %w", file, err)
	}

	doc, err := ParseClipConfig(data)
	if err != nil {
		return fmt.Errorf("剪辑文档 %s: %w", file, err)
	}

	for i := range doc.Clips {
		clip := &doc.Clips[i]
		if prev, exists := l.sources[clip.Name]; exists {
			return fmt.Errorf("重复的剪辑名称 '%s'（%s 与 %s）", clip.Name, prev, file)
		}
		l.clips[clip.Name] = clip
		l.sources[clip.Name] = file
	}
	return nil
}

// Add 把一个剪辑加入剪辑库，已存在的同名剪辑会被替换
func (l *ClipLibrary) Add(clip *ClipDef) {
	if clip == nil || clip.Name == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.clips[clip.Name] = clip
	if _, ok := l.sources[clip.Name]; !ok {
		l.sources[clip.Name] = ""
	}
}

// Clip 获取剪辑定义
//
// 返回：
//   - *ClipDef: 剪辑定义
//   - error: 剪辑不存在时返回错误
func (l *ClipLibrary) Clip(name string) (*ClipDef, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	clip, exists := l.clips[name]
	if !exists {
		return nil, fmt.Errorf("剪辑 '%s' 不存在", name)
	}
	return clip, nil
}

// Source 返回剪辑所在的文件，代码中添加的剪辑返回空字符串
func (l *ClipLibrary) Source(name string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.sources[name]
}

// Names 列出所有剪辑名称（已排序）
func (l *ClipLibrary) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.clips))
	for name := range l.clips {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len 返回剪辑数量
func (l *ClipLibrary) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.clips)
}
