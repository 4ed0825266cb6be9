package config

import (
	"math"
	"strings"
	"testing"
)

// TestLoadClipConfig_ValidFile 测试加载有效的剪辑文档
func TestLoadClipConfig_ValidFile(t *testing.T) {
	config, err := LoadClipConfig("testdata/valid_clips.yaml")
	if err != nil {
		t.Fatalf("加载有效剪辑文档失败: %v", err)
	}

	if len(config.Clips) != 2 {
		t.Fatalf("Clips 数量 = %d, want 2", len(config.Clips))
	}

	intro, ok := config.Clip("intro")
	if !ok {
		t.Fatal("找不到剪辑 intro")
	}
	if intro.Duration != 2 || intro.RepeatCount() != 3 || intro.TimeScale != 0.5 {
		t.Errorf("intro = duration %v repeat %d time_scale %v", intro.Duration, intro.RepeatCount(), intro.TimeScale)
	}
	if len(intro.Tracks) != 2 {
		t.Fatalf("intro.Tracks 数量 = %d, want 2", len(intro.Tracks))
	}

	box := intro.Tracks[0]
	if box.Target != "box" || box.Easing != "QuadOut" || !box.Yoyo || box.RepeatCount() != 2 {
		t.Errorf("box 轨道解析错误: %+v", box)
	}
	if box.To["x"] != "+100" {
		t.Errorf("to.x = %v, 期望字符串 \"+100\"", box.To["x"])
	}
	scale, ok := box.To["scale"].(map[string]any)
	if !ok || len(scale) != 2 {
		t.Errorf("to.scale 应为一层嵌套，得到 %#v", box.To["scale"])
	}

	label := intro.Tracks[1]
	if label.Duration != 1.0 {
		t.Errorf("省略的轨道 duration 应默认为 1.0, 得到 %v", label.Duration)
	}
	if label.RepeatCount() != 1 {
		t.Errorf("省略的轨道 repeat 应默认为 1, 得到 %d", label.RepeatCount())
	}
}

// TestLoadClipConfig_DerivedDuration 省略剪辑时长时取最晚结束的轨道
func TestLoadClipConfig_DerivedDuration(t *testing.T) {
	config, err := LoadClipConfig("testdata/valid_clips.yaml")
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	outro, _ := config.Clip("outro")

	// 0.25 + 0.5*2 + 0.25
	if math.Abs(outro.Duration-1.5) > 0.001 {
		t.Errorf("outro.Duration = %v, 期望 1.5", outro.Duration)
	}
	if outro.TimeScale != 1.0 {
		t.Errorf("outro.TimeScale = %v, 期望默认 1.0", outro.TimeScale)
	}
	if names := config.Names(); len(names) != 2 || names[0] != "intro" || names[1] != "outro" {
		t.Errorf("Names() = %v", names)
	}
}

// TestLoadClipConfig_FileNotFound 测试加载不存在的文件
func TestLoadClipConfig_FileNotFound(t *testing.T) {
	_, err := LoadClipConfig("nonexistent.yaml")
	if err == nil {
		t.Error("期望加载不存在的文件时返回错误，但得到 nil")
	}
}

// TestLoadClipConfig_InvalidYAML 测试加载格式错误的 YAML
func TestLoadClipConfig_InvalidYAML(t *testing.T) {
	_, err := LoadClipConfig("testdata/invalid_yaml.yaml")
	if err == nil {
		t.Error("期望加载无效 YAML 时返回错误，但得到 nil")
	}
}

// TestParseClipConfig_Validation 测试各种无效文档
func TestParseClipConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "空文档",
			doc:     "clips: []",
			wantErr: "没有任何剪辑",
		},
		{
			name:    "缺少名称",
			doc:     "clips:\n  - tracks:\n      - {target: a, to: {x: 1}}",
			wantErr: "缺少 'name'",
		},
		{
			name:    "重复名称",
			doc:     "clips:\n  - name: a\n    tracks: [{target: a, to: {x: 1}}]\n  - name: a\n    tracks: [{target: a, to: {x: 1}}]",
			wantErr: "重复的剪辑名称",
		},
		{
			name:    "没有轨道",
			doc:     "clips:\n  - name: a\n    duration: 1",
			wantErr: "'tracks' 列表为空",
		},
		{
			name:    "缺少目标",
			doc:     "clips:\n  - name: a\n    tracks: [{to: {x: 1}}]",
			wantErr: "缺少 'target'",
		},
		{
			name:    "负数时长",
			doc:     "clips:\n  - name: a\n    tracks: [{target: a, duration: -1, to: {x: 1}}]",
			wantErr: "'duration' 不能为负数",
		},
		{
			name:    "负数延迟",
			doc:     "clips:\n  - name: a\n    tracks: [{target: a, delay: -1, to: {x: 1}}]",
			wantErr: "'delay' 不能为负数",
		},
		{
			name:    "没有 from 和 to",
			doc:     "clips:\n  - name: a\n    tracks: [{target: a, initial: {x: 1}}]",
			wantErr: "至少需要一个",
		},
		{
			name:    "无法解析的值",
			doc:     "clips:\n  - name: a\n    tracks: [{target: a, to: {x: \"+abc\"}}]",
			wantErr: "无法解析",
		},
		{
			name:    "两层嵌套",
			doc:     "clips:\n  - name: a\n    tracks: [{target: a, to: {scale: {x: {deep: 1}}}}]",
			wantErr: "最多支持一层嵌套",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseClipConfig([]byte(tt.doc))
			if err == nil {
				t.Fatalf("期望验证失败，但得到 nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("错误信息 %q 不包含 %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestParseClipConfig_InfiniteRepeat 0 和负数循环次数原样保留，由动画器归一化
func TestParseClipConfig_InfiniteRepeat(t *testing.T) {
	doc := "clips:\n  - name: loop\n    repeat: 0\n    tracks: [{target: a, repeat: -1, duration: 2, to: {x: 1}}]"
	config, err := ParseClipConfig([]byte(doc))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	clip := config.Clips[0]
	if clip.RepeatCount() != 0 {
		t.Errorf("clip.RepeatCount() = %d, 期望 0", clip.RepeatCount())
	}
	if clip.Tracks[0].RepeatCount() != -1 {
		t.Errorf("track.RepeatCount() = %d, 期望 -1", clip.Tracks[0].RepeatCount())
	}
	// 无限循环的轨道只按一个循环推导剪辑时长
	if clip.Duration != 2 {
		t.Errorf("clip.Duration = %v, 期望 2", clip.Duration)
	}
}

// TestMarshalClipConfig 编码后可以重新解析
func TestMarshalClipConfig(t *testing.T) {
	config, err := LoadClipConfig("testdata/valid_clips.yaml")
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}

	data, err := MarshalClipConfig(config)
	if err != nil {
		t.Fatalf("编码失败: %v", err)
	}
	again, err := ParseClipConfig(data)
	if err != nil {
		t.Fatalf("重新解析失败: %v\n%s", err, data)
	}
	intro, _ := again.Clip("intro")
	if intro == nil || intro.Tracks[0].To["x"] != "+100" {
		t.Errorf("相对值在编码后丢失")
	}
}
