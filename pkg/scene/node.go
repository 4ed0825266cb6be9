// Package scene 提供一个最小的场景节点树
//
// Node 实现 tween.Target：数值属性 x、y、rotation、alpha 以及 Extra 中的自定义属性，
// 复合属性 scale{x,y} 和 color{r,g,b,a}。节点可以按 ID 在子树中查找后代，
// 供多轨道动画器解析轨道目标。
package scene

import (
	"strings"

	"github.com/gonewx/tween/pkg/tween"
)

// Vec2 二维向量
type Vec2 struct {
	X, Y float64
}

// Color 颜色分量，取值范围 [0, 1]
type Color struct {
	R, G, B, A float64
}

// White 不透明白色
var White = Color{R: 1, G: 1, B: 1, A: 1}

// Node 场景节点
type Node struct {
	ID   string
	Name string

	X, Y     float64
	Rotation float64
	Alpha    float64
	Scale    Vec2
	Color    Color

	// Width/Height 用于绘制，不参与动画
	Width, Height float64

	// Extra 自定义数值属性
	Extra map[string]float64

	parent   *Node
	children []*Node
}

// NewNode 创建节点（alpha=1, scale=1, color=白色）
func NewNode(id string) *Node {
	return &Node{
		ID:    id,
		Name:  id,
		Alpha: 1,
		Scale: Vec2{X: 1, Y: 1},
		Color: White,
	}
}

// AddChild 添加子节点，子节点会先从原父节点移除
func (n *Node) AddChild(child *Node) *Node {
	if child == nil || child == n {
		return n
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return n
}

// RemoveChild 移除直接子节点
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Parent 返回父节点
func (n *Node) Parent() *Node { return n.parent }

// Children 返回子节点列表（只读）
func (n *Node) Children() []*Node { return n.children }

// FindByID 深度优先查找 ID 匹配的后代节点（不包括自身）
func (n *Node) FindByID(id string) *Node {
	if n == nil || id == "" {
		return nil
	}
	for _, c := range n.children {
		if c.ID == id {
			return c
		}
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// Lookup 按 ID 查找后代并作为动画目标返回
func (n *Node) Lookup(id string) (tween.Target, bool) {
	if found := n.FindByID(id); found != nil {
		return found, true
	}
	return nil, false
}

// Walk 深度优先遍历自身和全部后代，fn 返回 false 时停止进入该节点的子树
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// WorldPosition 返回累加所有祖先偏移后的坐标
func (n *Node) WorldPosition() (float64, float64) {
	x, y := n.X, n.Y
	for p := n.parent; p != nil; p = p.parent {
		x += p.X
		y += p.Y
	}
	return x, y
}

// WorldAlpha 返回乘上所有祖先透明度后的值
func (n *Node) WorldAlpha() float64 {
	a := n.Alpha
	for p := n.parent; p != nil; p = p.parent {
		a *= p.Alpha
	}
	return a
}

// SetExtra 设置自定义属性
func (n *Node) SetExtra(key string, value float64) *Node {
	if n.Extra == nil {
		n.Extra = make(map[string]float64)
	}
	n.Extra[key] = value
	return n
}

// Property 读取数值属性
func (n *Node) Property(key string) (float64, bool) {
	switch strings.ToLower(key) {
	case "x":
		return n.X, true
	case "y":
		return n.Y, true
	case "rotation":
		return n.Rotation, true
	case "alpha":
		return n.Alpha, true
	}
	v, ok := n.Extra[key]
	return v, ok
}

// SetProperty 写入数值属性，未知属性忽略
func (n *Node) SetProperty(key string, value float64) {
	switch strings.ToLower(key) {
	case "x":
		n.X = value
	case "y":
		n.Y = value
	case "rotation":
		n.Rotation = value
	case "alpha":
		n.Alpha = value
	default:
		if _, ok := n.Extra[key]; ok {
			n.Extra[key] = value
		}
	}
}

// Field 读取复合属性的分量
func (n *Node) Field(key, sub string) (float64, bool) {
	if p := n.field(key, sub); p != nil {
		return *p, true
	}
	return 0, false
}

// SetField 写入复合属性的分量，未知分量忽略
func (n *Node) SetField(key, sub string, value float64) {
	if p := n.field(key, sub); p != nil {
		*p = value
	}
}

func (n *Node) field(key, sub string) *float64 {
	switch strings.ToLower(key) {
	case "scale":
		switch strings.ToLower(sub) {
		case "x":
			return &n.Scale.X
		case "y":
			return &n.Scale.Y
		}
	case "color":
		switch strings.ToLower(sub) {
		case "r":
			return &n.Color.R
		case "g":
			return &n.Color.G
		case "b":
			return &n.Color.B
		case "a":
			return &n.Color.A
		}
	}
	return nil
}
