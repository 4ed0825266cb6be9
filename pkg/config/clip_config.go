package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/tween/pkg/tween"
)

// ClipConfig 剪辑文档的顶层结构
// 一个文档可以包含多个剪辑，每个剪辑由若干轨道组成
type ClipConfig struct {
	// Clips 剪辑列表
	Clips []ClipDef `yaml:"clips"`
}

// ClipDef 剪辑定义
// 对应一个多轨道动画器：所有轨道共享同一个时间轴
type ClipDef struct {
	// Name 剪辑名称（代码中引用）
	Name string `yaml:"name"`

	// Duration 整个剪辑一个循环的时长（秒）
	// 省略时取所有轨道中最晚的结束时间
	Duration float64 `yaml:"duration,omitempty"`

	// Repeat 剪辑循环次数（可选，默认 1；0 或负数表示无限循环）
	Repeat *int `yaml:"repeat,omitempty"`

	// TimeScale 时间缩放（可选，默认 1.0）
	TimeScale float64 `yaml:"time_scale,omitempty"`

	// Tracks 轨道列表
	Tracks []TrackDef `yaml:"tracks"`
}

// TrackDef 轨道定义
// 每个轨道驱动场景中一个后代节点的属性
type TrackDef struct {
	// Target 目标节点 ID（在剪辑所属节点的子树中查找）
	Target string `yaml:"target"`

	// Delay 延迟（秒）
	Delay float64 `yaml:"delay,omitempty"`

	// Duration 单个循环时长（秒，默认 1.0）
	Duration float64 `yaml:"duration,omitempty"`

	// Easing 缓动函数名称（如 "QuadOut"），未知名称回退为 Linear
	Easing string `yaml:"easing,omitempty"`

	// Repeat 循环次数（可选，默认 1；0 或负数表示无限循环）
	Repeat *int `yaml:"repeat,omitempty"`

	// RepeatDelay 循环之间的间隔（秒）
	RepeatDelay float64 `yaml:"repeat_delay,omitempty"`

	// Yoyo 是否往返播放
	Yoyo bool `yaml:"yoyo,omitempty"`

	// Initial 创建轨道时立即写入的属性
	Initial map[string]any `yaml:"initial,omitempty"`

	// From 起始属性（与 To 同时设置时 To 优先）
	From map[string]any `yaml:"from,omitempty"`

	// To 目标属性，支持 "+N"、"-N"、"*N" 相对值和一层嵌套
	To map[string]any `yaml:"to,omitempty"`
}

// RepeatCount 返回剪辑的循环次数，未设置时为 1
func (c *ClipDef) RepeatCount() int {
	if c.Repeat == nil {
		return 1
	}
	return *c.Repeat
}

// RepeatCount 返回轨道的循环次数，未设置时为 1
func (t *TrackDef) RepeatCount() int {
	if t.Repeat == nil {
		return 1
	}
	return *t.Repeat
}

// End 返回轨道在剪辑时间轴上的结束时间
// 无限循环的轨道只计算一个循环
func (t *TrackDef) End() float64 {
	n := t.RepeatCount()
	if n <= 0 {
		n = 1
	}
	return t.Delay + t.Duration*float64(n) + t.RepeatDelay*float64(n-1)
}

// Clip 按名称查找剪辑
func (c *ClipConfig) Clip(name string) (*ClipDef, bool) {
	for i := range c.Clips {
		if c.Clips[i].Name == name {
			return &c.Clips[i], true
		}
	}
	return nil, false
}

// Names 返回所有剪辑名称（已排序）
func (c *ClipConfig) Names() []string {
	names := make([]string, 0, len(c.Clips))
	for _, clip := range c.Clips {
		names = append(names, clip.Name)
	}
	sort.Strings(names)
	return names
}

// LoadClipConfig 从 YAML 文件加载剪辑文档
//
// 参数：
//   - path: 文档路径
//
// 返回：
//   - *ClipConfig: 解析并补全默认值后的文档
//   - error: 读取、解析或验证错误
func LoadClipConfig(path string) (*ClipConfig, error) {
	// 1. 读取文件
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取剪辑文档 %s: %w", path, err)
	}

	// 2. 解析并验证
	config, err := ParseClipConfig(data)
	if err != nil {
		return nil, fmt.Errorf("剪辑文档 %s: %w", path, err)
	}
	return config, nil
}

// ParseClipConfig 解析内存中的剪辑文档，补全默认值并验证
func ParseClipConfig(data []byte) (*ClipConfig, error) {
	var config ClipConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("无法解析 YAML: %w", err)
	}

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("验证失败: %w", err)
	}
	return &config, nil
}

// MarshalClipConfig 将剪辑文档编码为 YAML
func MarshalClipConfig(config *ClipConfig) ([]byte, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("无法编码剪辑文档: %w", err)
	}
	return data, nil
}

// applyDefaults 补全省略的字段
func applyDefaults(config *ClipConfig) {
	for i := range config.Clips {
		clip := &config.Clips[i]
		if clip.TimeScale == 0 {
			clip.TimeScale = 1.0
		}

		end := 0.0
		for j := range clip.Tracks {
			track := &clip.Tracks[j]
			if track.Duration == 0 {
				track.Duration = 1.0
			}
			if e := track.End(); e > end {
				end = e
			}
		}

		if clip.Duration == 0 {
			clip.Duration = end
		}
	}
}

// validateConfig 验证文档的完整性和正确性
func validateConfig(config *ClipConfig) error {
	if len(config.Clips) == 0 {
		return fmt.Errorf("文档中没有任何剪辑")
	}

	names := make(map[string]bool)
	for i, clip := range config.Clips {
		if clip.Name == "" {
			return fmt.Errorf("剪辑 #%d 缺少 'name' 字段", i)
		}
		if names[clip.Name] {
			return fmt.Errorf("重复的剪辑名称 '%s'", clip.Name)
		}
		names[clip.Name] = true

		if clip.Duration < 0 {
			return fmt.Errorf("剪辑 '%s' 的 'duration' 不能为负数: %v", clip.Name, clip.Duration)
		}
		if clip.TimeScale < 0 {
			return fmt.Errorf("剪辑 '%s' 的 'time_scale' 不能为负数: %v", clip.Name, clip.TimeScale)
		}
		if len(clip.Tracks) == 0 {
			return fmt.Errorf("剪辑 '%s' 的 'tracks' 列表为空", clip.Name)
		}

		for j, track := range clip.Tracks {
			if err := validateTrack(&track); err != nil {
				return fmt.Errorf("剪辑 '%s' 的轨道 #%d: %w", clip.Name, j, err)
			}
		}
	}
	return nil
}

// validateTrack 验证单个轨道
func validateTrack(track *TrackDef) error {
	if track.Target == "" {
		return fmt.Errorf("缺少 'target' 字段")
	}
	if track.Delay < 0 {
		return fmt.Errorf("'delay' 不能为负数: %v", track.Delay)
	}
	if track.Duration < 0 {
		return fmt.Errorf("'duration' 不能为负数: %v", track.Duration)
	}
	if track.RepeatDelay < 0 {
		return fmt.Errorf("'repeat_delay' 不能为负数: %v", track.RepeatDelay)
	}
	if len(track.From) == 0 && len(track.To) == 0 {
		return fmt.Errorf("'from' 和 'to' 至少需要一个")
	}

	for field, props := range map[string]map[string]any{
		"initial": track.Initial,
		"from":    track.From,
		"to":      track.To,
	} {
		if err := validateProps(props); err != nil {
			return fmt.Errorf("'%s' %w", field, err)
		}
	}
	return nil
}

// validateProps 检查属性值是否都能解析为数值、相对值或一层嵌套
func validateProps(props map[string]any) error {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v, ok := tween.ParseValue(props[key])
		if !ok {
			return fmt.Errorf("中属性 '%s' 的值 %v 无法解析", key, props[key])
		}
		if v.IsRecord() {
			if nested, ok := props[key].(map[string]any); ok && len(v.Fields) != len(nested) {
				return fmt.Errorf("中属性 '%s' 的嵌套值无法解析（最多支持一层嵌套）", key)
			}
		}
	}
	return nil
}
