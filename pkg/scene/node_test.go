package scene

import (
	"math"
	"testing"

	"github.com/gonewx/tween/pkg/tween"
)

var _ tween.Target = (*Node)(nil)

func buildTree() *Node {
	root := NewNode("root")
	panel := NewNode("panel")
	box := NewNode("box")
	label := NewNode("label")
	deep := NewNode("deep")

	root.AddChild(panel).AddChild(label)
	panel.AddChild(box)
	box.AddChild(deep)
	return root
}

func TestFindByID(t *testing.T) {
	root := buildTree()

	tests := []struct {
		name string
		id   string
		want string
	}{
		{"直接子节点", "panel", "panel"},
		{"孙节点", "box", "box"},
		{"深层节点", "deep", "deep"},
		{"不包括自身", "root", ""},
		{"不存在", "missing", ""},
		{"空 ID", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := root.FindByID(tt.id)
			if tt.want == "" {
				if got != nil {
					t.Errorf("FindByID(%q) = %s, 期望 nil", tt.id, got.ID)
				}
				return
			}
			if got == nil || got.ID != tt.want {
				t.Errorf("FindByID(%q) = %v, 期望 %s", tt.id, got, tt.want)
			}
		})
	}

	var nilNode *Node
	if nilNode.FindByID("box") != nil {
		t.Error("nil 节点查找应返回 nil")
	}
}

func TestFindByIDDepthFirst(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	dupDeep := NewNode("dup")
	dupShallow := NewNode("dup")
	a.AddChild(dupDeep)
	root.AddChild(a).AddChild(dupShallow)

	// 先进入第一个子树
	if got := root.FindByID("dup"); got != dupDeep {
		t.Error("深度优先查找应返回第一个子树中的节点")
	}
}

func TestAddChildReparents(t *testing.T) {
	root := buildTree()
	box := root.FindByID("box")
	panel := root.FindByID("panel")

	root.AddChild(box)
	if box.Parent() != root {
		t.Error("box 的父节点应为 root")
	}
	if len(panel.Children()) != 0 {
		t.Errorf("panel 仍有 %d 个子节点", len(panel.Children()))
	}

	root.AddChild(nil).AddChild(root)
	if len(root.Children()) != 3 {
		t.Errorf("root 子节点数 = %d, 期望 3", len(root.Children()))
	}
}

func TestWorldTransform(t *testing.T) {
	root := buildTree()
	root.X, root.Y, root.Alpha = 10, 20, 0.5
	panel := root.FindByID("panel")
	panel.X, panel.Alpha = 5, 0.5
	box := root.FindByID("box")
	box.X, box.Y = 1, 2

	x, y := box.WorldPosition()
	if x != 16 || y != 22 {
		t.Errorf("WorldPosition() = (%v, %v), 期望 (16, 22)", x, y)
	}
	if math.Abs(box.WorldAlpha()-0.25) > 0.001 {
		t.Errorf("WorldAlpha() = %v, 期望 0.25", box.WorldAlpha())
	}

	visited := 0
	root.Walk(func(n *Node) bool {
		visited++
		return n.ID != "panel"
	})
	// root, panel, label（跳过 panel 子树）
	if visited != 3 {
		t.Errorf("Walk 访问了 %d 个节点, 期望 3", visited)
	}
}

func TestProperties(t *testing.T) {
	n := NewNode("n").SetExtra("glow", 0.2)

	n.SetProperty("x", 3)
	n.SetProperty("Rotation", 1.5)
	n.SetProperty("glow", 0.8)
	n.SetProperty("unknown", 9)

	if v, ok := n.Property("x"); !ok || v != 3 {
		t.Errorf("x = %v, %v", v, ok)
	}
	if v, ok := n.Property("rotation"); !ok || v != 1.5 {
		t.Errorf("rotation = %v, %v", v, ok)
	}
	if v, ok := n.Property("glow"); !ok || v != 0.8 {
		t.Errorf("glow = %v, %v", v, ok)
	}
	if _, ok := n.Property("unknown"); ok {
		t.Error("未知属性不应存在")
	}
	if _, ok := n.Property("scale"); ok {
		t.Error("scale 是复合属性，不应作为数值读取")
	}

	n.SetField("scale", "x", 2)
	n.SetField("color", "a", 0.5)
	n.SetField("color", "z", 9)
	if v, _ := n.Field("scale", "x"); v != 2 {
		t.Errorf("scale.x = %v, 期望 2", v)
	}
	if v, _ := n.Field("scale", "y"); v != 1 {
		t.Errorf("scale.y = %v, 期望 1", v)
	}
	if n.Color.A != 0.5 {
		t.Errorf("color.a = %v, 期望 0.5", n.Color.A)
	}
	if _, ok := n.Field("color", "z"); ok {
		t.Error("未知分量不应存在")
	}
}

// TestTweenDrivesNode 属性动画器直接驱动节点
func TestTweenDrivesNode(t *testing.T) {
	n := NewNode("box")
	n.X = 100

	tw := tween.New().
		SetTarget(n).
		SetDuration(1).
		SetTo(tween.ParseSpec(map[string]any{
			"x":     "+50",
			"alpha": 0,
			"scale": map[string]any{"x": 2, "y": "*3"},
		}))

	tw.Update(0)
	tw.Update(0.5)
	if math.Abs(n.X-125) > 0.001 || math.Abs(n.Alpha-0.5) > 0.001 {
		t.Errorf("t=0.5 时 x=%v alpha=%v, 期望 125 0.5", n.X, n.Alpha)
	}
	if math.Abs(n.Scale.X-1.5) > 0.001 || math.Abs(n.Scale.Y-2) > 0.001 {
		t.Errorf("t=0.5 时 scale=%+v, 期望 {1.5 2}", n.Scale)
	}

	tw.Update(1)
	if math.Abs(n.X-150) > 0.001 || math.Abs(n.Scale.Y-3) > 0.001 || !tw.Ended() {
		t.Errorf("结束时 x=%v scale.y=%v ended=%v", n.X, n.Scale.Y, tw.Ended())
	}
}

func TestLookup(t *testing.T) {
	root := buildTree()

	target, ok := root.Lookup("label")
	if !ok || target.(*Node).ID != "label" {
		t.Errorf("Lookup(label) = %v, %v", target, ok)
	}
	// 未找到时必须返回 nil 接口，而不是包着 nil 指针的接口
	target, ok = root.Lookup("missing")
	if ok || target != nil {
		t.Errorf("Lookup(missing) = %v, %v", target, ok)
	}
}
