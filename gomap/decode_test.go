package gomap

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ultimate-research/prc-rs/codec"
	"github.com/ultimate-research/prc-rs/hash40"
	"github.com/ultimate-research/prc-rs/ir"
)

type Move struct {
	Name   string  `prc:"name"`
	Damage float32 `prc:"damage"`
}

type Stats struct {
	JumpCount uint8
	Weight    int16 `prc:"weight"`
}

type Fighter struct {
	Stats
	Name    string                  `prc:"name"`
	Kind    hash40.Hash40           `prc:"kind"`
	KindStr string                  `prc:"kind"`
	Raw     uint32                  `prc:"0x000000abcd"`
	Any     int                     `prc:"weight"`
	Moves   []Move                  `prc:"moves"`
	Pair    [2]bool                 `prc:"pair"`
	Extra   map[string]int64        `prc:"extra"`
	ByHash  map[hash40.Hash40]int64 `prc:"extra"`
	Tree    *ir.Node                `prc:"extra"`
	Opt     *Move                   `prc:"opt,optional"`
	Skip    string                  `prc:"-"`
	private int
}

func testLabels() *hash40.Labels {
	l := hash40.NewLabels()
	for _, s := range []string{"name", "kind", "fighter_kind_mario", "moves", "damage", "jump_count", "weight", "pair", "extra", "a", "b"} {
		l.AddString(s)
	}
	return l
}

func fighterTree() *ir.Node {
	move := func(name string, dmg float32) *ir.Node {
		return ir.FromKeyVals([]ir.KeyVal{
			{Key: hash40.Of("name"), Val: ir.FromString(name)},
			{Key: hash40.Of("damage"), Val: ir.FromFloat(dmg)},
			{Key: hash40.Of("unused"), Val: ir.FromBool(true)},
		})
	}
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: hash40.Of("name"), Val: ir.FromString("mario")},
		{Key: hash40.Of("kind"), Val: ir.FromHash(hash40.Of("fighter_kind_mario"))},
		{Key: 0xabcd, Val: ir.FromU32(math.MaxUint32)},
		{Key: hash40.Of("jump_count"), Val: ir.FromU8(2)},
		{Key: hash40.Of("weight"), Val: ir.FromI16(-98)},
		{Key: hash40.Of("moves"), Val: ir.NewList(move("jab", 2.5), move("smash", 18))},
		{Key: hash40.Of("pair"), Val: ir.NewList(ir.FromBool(true), ir.FromBool(false))},
		{Key: hash40.Of("extra"), Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: hash40.Of("a"), Val: ir.FromU16(1)},
			{Key: hash40.Of("b"), Val: ir.FromI32(-2)},
		})},
	})
}

func TestFromNode(t *testing.T) {
	tree := fighterTree()
	var got Fighter
	got.Skip = "kept"
	if err := FromNode(tree, &got, LoadLabels(testLabels())); err != nil {
		t.Fatal(err)
	}
	want := Fighter{
		Stats:   Stats{JumpCount: 2, Weight: -98},
		Name:    "mario",
		Kind:    hash40.Of("fighter_kind_mario"),
		KindStr: "fighter_kind_mario",
		Raw:     math.MaxUint32,
		Any:     -98,
		Moves:   []Move{{"jab", 2.5}, {"smash", 18}},
		Pair:    [2]bool{true, false},
		Extra:   map[string]int64{"a": 1, "b": -2},
		ByHash:  map[hash40.Hash40]int64{hash40.Of("a"): 1, hash40.Of("b"): -2},
		Skip:    "kept",
	}
	if !ir.Equal(got.Tree, tree.Get(hash40.Of("extra"))) {
		t.Errorf("Tree does not match the extra subtree")
	}
	if got.Tree.Parent() != nil {
		t.Errorf("Tree is not a detached copy")
	}
	got.Tree = nil
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Fighter{})); diff != "" {
		t.Errorf("FromNode mismatch (-want +got):\n%s", diff)
	}
}

func TestFromNodeNoLabels(t *testing.T) {
	var got struct {
		Kind string `prc:"kind"`
	}
	if err := FromNode(fighterTree(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Kind != hash40.Of("fighter_kind_mario").String() {
		t.Errorf("Kind = %q, want the raw form", got.Kind)
	}
}

type wrapped struct {
	n int
}

func (w *wrapped) FromNode(n *ir.Node, _ *hash40.Labels) error {
	w.n = n.Len()
	return nil
}

func TestNodeFromer(t *testing.T) {
	var got struct {
		Moves wrapped `prc:"moves"`
	}
	if err := FromNode(fighterTree(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Moves.n != 2 {
		t.Errorf("FromNode saw %d moves", got.Moves.n)
	}
}

func TestFromNodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		target any
		path   string
		err    error
	}{
		{"not a pointer", Move{}, "$", ErrTarget},
		{"missing key", &struct {
			Moves []struct {
				Name string `prc:"name"`
				Hit  bool   `prc:"hit"`
			} `prc:"moves"`
		}{}, "$.moves[0].hit", ErrNotFound},
		{"wrong scalar", &struct {
			Weight uint16 `prc:"weight"`
		}{}, "$.weight", ir.ErrType},
		{"wrong element", &struct {
			Moves []float32 `prc:"moves"`
		}{}, "$.moves[0]", ir.ErrType},
		{"list into struct", &struct {
			Pair Move `prc:"pair"`
		}{}, "$.pair", ir.ErrType},
		{"array length", &struct {
			Pair [3]bool `prc:"pair"`
		}{}, "$.pair", ErrLength},
		{"negative into uint", &struct {
			Weight uint64 `prc:"weight"`
		}{}, "$.weight", ErrRange},
		{"too wide for int", &struct {
			Raw int32 `prc:"0x000000abcd"`
		}{}, "$.0x000000abcd", ir.ErrType},
		{"bad map key", &struct {
			Extra map[int]int `prc:"extra"`
		}{}, "$.extra", ErrTarget},
		{"unsupported", &struct {
			Name chan int `prc:"name"`
		}{}, "$.name", ErrTarget},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := FromNode(fighterTree(), test.target, LoadLabels(testLabels()))
			if !errors.Is(err, test.err) {
				t.Fatalf("error %v, want %v", err, test.err)
			}
			var ge *Error
			if !errors.As(err, &ge) {
				t.Fatalf("error %T is not an *Error", err)
			}
			if ge.Path != test.path {
				t.Errorf("path %q, want %q", ge.Path, test.path)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	data := codec.Encode(fighterTree())
	var got struct {
		Name  string `prc:"name"`
		Moves []Move `prc:"moves"`
	}
	if err := Load(data, &got, LoadLabels(testLabels())); err != nil {
		t.Fatal(err)
	}
	if got.Name != "mario" || len(got.Moves) != 2 || got.Moves[1].Damage != 18 {
		t.Errorf("got %+v", got)
	}
	if err := Load(data[:20], &got); !errors.Is(err, ir.ErrMalformedInput) {
		t.Errorf("truncated input: %v", err)
	}
}

func TestSnake(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Name", "name"},
		{"WalkSpeedMax", "walk_speed_max"},
		{"HPRatio", "hp_ratio"},
		{"ID", "id"},
		{"Jump2Height", "jump2_height"},
	}
	for _, test := range tests {
		if got := snake(test.in); got != test.want {
			t.Errorf("snake(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}
