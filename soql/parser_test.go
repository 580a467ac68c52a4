package soql

import (
	"reflect"
	"testing"
)

func TestParseWhere_Empty(t *testing.T) {
	for _, clause := range []string{"", "   ", "\t\n"} {
		if got := ParseWhere(clause); got != nil {
			t.Errorf("ParseWhere(%q) = %#v, want nil", clause, got)
		}
	}
}

func TestParseWhere_SingleLeaf(t *testing.T) {
	tests := []struct {
		name      string
		clause    string
		wantField string
		wantOp    Operator
		wantValue string
	}{
		{"equals single quotes", "Status = 'Completed'", "Status", OpEqual, "Completed"},
		{"equals double quotes", `Location = "Boardroom"`, "Location", OpEqual, "Boardroom"},
		{"equals unquoted", "IsAllDayEvent = true", "IsAllDayEvent", OpEqual, "true"},
		{"not equal", "Status != 'Open'", "Status", OpNotEqual, "Open"},
		{"greater", "Priority > '2'", "Priority", OpGreater, "2"},
		{"less", "Priority < '2'", "Priority", OpLess, "2"},
		{"greater equal", "DueDate >= '2026-01-01'", "DueDate", OpGreaterEqual, "2026-01-01"},
		{"less equal", "DueDate <= '2026-12-31'", "DueDate", OpLessEqual, "2026-12-31"},
		{"like", "Subject LIKE '%meeting%'", "Subject", OpLike, "%meeting%"},
		{"contains", "Subject CONTAINS 'review'", "Subject", OpContains, "review"},
		{"date literal value", "DueDate = TODAY", "DueDate", OpEqual, "TODAY"},
		// LIKE is detected before the arithmetic operators, so an =
		// inside the pattern does not split the condition.
		{"like with equals in pattern", "Subject LIKE '%a = b%'", "Subject", OpLike, "%a = b%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leaf, ok := ParseWhere(tt.clause).(*Leaf)
			if !ok {
				t.Fatalf("ParseWhere(%q) is not a leaf", tt.clause)
			}
			if leaf.Unparsed {
				t.Fatalf("ParseWhere(%q) unexpectedly unparsed", tt.clause)
			}
			if leaf.Field != tt.wantField || leaf.Op != tt.wantOp || leaf.Value != tt.wantValue {
				t.Errorf("ParseWhere(%q) = {%q %q %q}, want {%q %q %q}",
					tt.clause, leaf.Field, leaf.Op, leaf.Value,
					tt.wantField, tt.wantOp, tt.wantValue)
			}
		})
	}
}

func TestParseWhere_InList(t *testing.T) {
	tests := []struct {
		name   string
		clause string
		want   []string
	}{
		{
			name:   "plain list",
			clause: "Status IN ('Open', 'Closed')",
			want:   []string{"Open", "Closed"},
		},
		{
			name:   "comma inside quoted value",
			clause: "Location IN ('Room 1, Floor 2', 'Lab')",
			want:   []string{"Room 1, Floor 2", "Lab"},
		},
		{
			name:   "mixed quote styles",
			clause: `Status IN ("Open", 'In Progress')`,
			want:   []string{"Open", "In Progress"},
		},
		{
			name:   "other quote kind inside quotes",
			clause: `Name IN ('O"Connor', 'Smith')`,
			want:   []string{`O"Connor`, "Smith"},
		},
		{
			name:   "empty entries dropped",
			clause: "Status IN ('Open', , 'Closed',)",
			want:   []string{"Open", "Closed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leaf, ok := ParseWhere(tt.clause).(*Leaf)
			if !ok {
				t.Fatalf("ParseWhere(%q) is not a leaf", tt.clause)
			}
			if leaf.Op != OpIn {
				t.Fatalf("ParseWhere(%q) op = %q, want IN", tt.clause, leaf.Op)
			}
			if len(leaf.Values) != len(tt.want) {
				t.Fatalf("ParseWhere(%q) values = %q, want %q", tt.clause, leaf.Values, tt.want)
			}
			for i := range tt.want {
				if leaf.Values[i] != tt.want[i] {
					t.Errorf("value[%d] = %q, want %q", i, leaf.Values[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseWhere_Precedence(t *testing.T) {
	// AND binds tighter than OR: A OR B AND C parses as A OR (B AND C).
	cond := ParseWhere("Status = 'Open' OR Status = 'Closed' AND Priority = 'High'")

	or, ok := cond.(*OrCondition)
	if !ok {
		t.Fatalf("top node = %#v, want OrCondition", cond)
	}
	if len(or.Children) != 2 {
		t.Fatalf("or children = %d, want 2", len(or.Children))
	}
	if _, ok := or.Children[0].(*Leaf); !ok {
		t.Errorf("first child = %#v, want leaf", or.Children[0])
	}
	and, ok := or.Children[1].(*AndCondition)
	if !ok {
		t.Fatalf("second child = %#v, want AndCondition", or.Children[1])
	}
	if len(and.Children) != 2 {
		t.Errorf("and children = %d, want 2", len(and.Children))
	}
}

func TestParseWhere_Grouping(t *testing.T) {
	cond := ParseWhere("(Status = 'Completed' OR Status = 'Closed') AND Priority = 'High'")

	and, ok := cond.(*AndCondition)
	if !ok {
		t.Fatalf("top node = %#v, want AndCondition", cond)
	}
	if len(and.Children) != 2 {
		t.Fatalf("and children = %d, want 2", len(and.Children))
	}
	or, ok := and.Children[0].(*OrCondition)
	if !ok {
		t.Fatalf("first child = %#v, want OrCondition", and.Children[0])
	}
	if len(or.Children) != 2 {
		t.Errorf("or children = %d, want 2", len(or.Children))
	}
}

func TestParseWhere_TransparentParens(t *testing.T) {
	plain, ok := ParseWhere("Status = 'Open'").(*Leaf)
	if !ok {
		t.Fatal("plain clause is not a leaf")
	}
	wrapped, ok := ParseWhere("(Status = 'Open')").(*Leaf)
	if !ok {
		t.Fatal("wrapped clause is not a leaf")
	}
	if !reflect.DeepEqual(plain, wrapped) {
		t.Errorf("(A) parsed differently from A: %#v vs %#v", wrapped, plain)
	}

	nested, ok := ParseWhere("((Status = 'Open'))").(*Leaf)
	if !ok || !reflect.DeepEqual(nested, plain) {
		t.Errorf("((A)) parsed differently from A: %#v", nested)
	}
}

func TestParseWhere_AdjacentGroupsNotUnwrapped(t *testing.T) {
	// (A) AND (B) starts with ( and ends with ) but is not one group;
	// the AND split must win.
	cond := ParseWhere("(Status = 'Open') AND (Priority = 'High')")
	if _, ok := cond.(*AndCondition); !ok {
		t.Fatalf("top node = %#v, want AndCondition", cond)
	}
}

func TestParseWhere_OperatorWordBoundaries(t *testing.T) {
	// OR inside an identifier must not split the clause.
	leaf, ok := ParseWhere("FLOOR = '2'").(*Leaf)
	if !ok {
		t.Fatalf("clause with OR-substring field is not a leaf")
	}
	if leaf.Field != "FLOOR" || leaf.Value != "2" {
		t.Errorf("leaf = {%q %q %q}", leaf.Field, leaf.Op, leaf.Value)
	}

	// Same for AND.
	leaf, ok = ParseWhere("BRAND = 'Acme'").(*Leaf)
	if !ok {
		t.Fatalf("clause with AND-substring field is not a leaf")
	}
	if leaf.Field != "BRAND" {
		t.Errorf("field = %q, want BRAND", leaf.Field)
	}
}

func TestParseWhere_OperatorInsideParens(t *testing.T) {
	// The OR at depth 1 belongs to the group, not the top level.
	cond := ParseWhere("(Status = 'Open' OR Status = 'Closed')")
	or, ok := cond.(*OrCondition)
	if !ok {
		t.Fatalf("top node = %#v, want OrCondition after unwrapping", cond)
	}
	if len(or.Children) != 2 {
		t.Errorf("or children = %d, want 2", len(or.Children))
	}
}

func TestParseWhere_MalformedLeaf(t *testing.T) {
	leaf, ok := ParseWhere("CompletelyUnstructured").(*Leaf)
	if !ok {
		t.Fatal("malformed clause is not a leaf")
	}
	if !leaf.Unparsed {
		t.Error("malformed clause should be marked unparsed")
	}
	if leaf.Op != OpEqual {
		t.Errorf("unparsed leaf op = %q, want =", leaf.Op)
	}
}

func TestParseWhere_DegenerateOperator(t *testing.T) {
	// A bare OR has no parseable parts; the tree must still be non-nil
	// and must match nothing.
	cond := ParseWhere("OR")
	if cond == nil {
		t.Fatal("bare OR parsed to nil; it should produce a never-matching tree")
	}
	if cond.Evaluate(map[string]interface{}{"Any": "thing"}, testNow) {
		t.Error("bare OR matched a record")
	}
}

func TestParseWhere_TrailingOperator(t *testing.T) {
	// "A = '1' AND" keeps the parseable part and drops the empty one.
	cond := ParseWhere("Status = 'Open' AND")
	and, ok := cond.(*AndCondition)
	if !ok {
		t.Fatalf("top node = %#v, want AndCondition", cond)
	}
	if len(and.Children) != 1 {
		t.Fatalf("and children = %d, want 1", len(and.Children))
	}
}

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"'Boardroom'", "Boardroom"},
		{`"Boardroom"`, "Boardroom"},
		{"  'Boardroom'  ", "Boardroom"},
		{"Boardroom", "Boardroom"},
		{"'unterminated", "'unterminated"},
		{`'mixed"`, `'mixed"`},
		// One layer only.
		{"''double''", "'double'"},
		{"''", ""},
		{"'", "'"},
	}
	for _, tt := range tests {
		if got := stripQuotes(tt.in); got != tt.want {
			t.Errorf("stripQuotes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
