package errors

import (
	"strings"
	"testing"
)

func TestStackFrame_String(t *testing.T) {
	tests := []struct {
		name     string
		frame    StackFrame
		expected string
	}{
		{
			name: "Frame with position",
			frame: StackFrame{
				FunctionName: "MyFunction",
				FileName:     "test.in",
				Position:     &Position{ByteOffset: 10, TokenIndex: 5},
			},
			expected: "MyFunction [byte: 10, token: 5]",
		},
		{
			name: "Frame without position",
			frame: StackFrame{
				FunctionName: "MyFunction",
				FileName:     "test.in",
				Position:     nil,
			},
			expected: "MyFunction",
		},
		{
			name: "Frame with dotted name",
			frame: StackFrame{
				FunctionName: "Stmts.Stmt",
				FileName:     "test.in",
				Position:     &Position{ByteOffset: 42, TokenIndex: 15},
			},
			expected: "Stmts.Stmt [byte: 42, token: 15]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.frame.String()
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestStackTrace_String(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		trace    StackTrace
	}{
		{
			name:     "Empty stack trace",
			trace:    StackTrace{},
			expected: "",
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "Main", Position: &Position{ByteOffset: 1, TokenIndex: 1}},
			},
			expected: "Main [byte: 1, token: 1]",
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "Main", Position: &Position{ByteOffset: 20, TokenIndex: 1}},
				{FunctionName: "Foo", Position: &Position{ByteOffset: 15, TokenIndex: 5}},
				{FunctionName: "Bar", Position: &Position{ByteOffset: 10, TokenIndex: 3}},
			},
			expected: "Bar [byte: 10, token: 3]\nFoo [byte: 15, token: 5]\nMain [byte: 20, token: 1]",
		},
		{
			name: "Frames with and without position",
			trace: StackTrace{
				{FunctionName: "Main", Position: &Position{ByteOffset: 20, TokenIndex: 1}},
				{FunctionName: "Foo", Position: nil},
			},
			expected: "Foo\nMain [byte: 20, token: 1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.trace.String()
			if result != tt.expected {
				t.Errorf("Expected:\n%s\nGot:\n%s", tt.expected, result)
			}
		})
	}
}

func TestStackTrace_Reverse(t *testing.T) {
	original := StackTrace{
		{FunctionName: "First", Position: &Position{ByteOffset: 1, TokenIndex: 1}},
		{FunctionName: "Second", Position: &Position{ByteOffset: 2, TokenIndex: 1}},
		{FunctionName: "Third", Position: &Position{ByteOffset: 3, TokenIndex: 1}},
	}

	reversed := original.Reverse()

	if reversed[0].FunctionName != "Third" {
		t.Errorf("Expected first frame to be 'Third', got %q", reversed[0].FunctionName)
	}
	if reversed[1].FunctionName != "Second" {
		t.Errorf("Expected second frame to be 'Second', got %q", reversed[1].FunctionName)
	}
	if reversed[2].FunctionName != "First" {
		t.Errorf("Expected third frame to be 'First', got %q", reversed[2].FunctionName)
	}

	if original[0].FunctionName != "First" {
		t.Errorf("Original stack trace was modified")
	}
}

func TestStackTrace_Top(t *testing.T) {
	tests := []struct {
		expected *string
		name     string
		trace    StackTrace
	}{
		{name: "Empty stack", trace: StackTrace{}, expected: nil},
		{
			name:     "Single frame",
			trace:    StackTrace{{FunctionName: "Main", Position: &Position{ByteOffset: 1, TokenIndex: 1}}},
			expected: stringPtr("Main"),
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "Main", Position: &Position{ByteOffset: 20, TokenIndex: 1}},
				{FunctionName: "Foo", Position: &Position{ByteOffset: 15, TokenIndex: 5}},
				{FunctionName: "Bar", Position: &Position{ByteOffset: 10, TokenIndex: 3}},
			},
			expected: stringPtr("Bar"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := tt.trace.Top()
			if tt.expected == nil {
				if top != nil {
					t.Errorf("Expected nil, got %v", top)
				}
			} else if top == nil {
				t.Errorf("Expected %q, got nil", *tt.expected)
			} else if top.FunctionName != *tt.expected {
				t.Errorf("Expected %q, got %q", *tt.expected, top.FunctionName)
			}
		})
	}
}

func TestStackTrace_Bottom(t *testing.T) {
	tests := []struct {
		expected *string
		name     string
		trace    StackTrace
	}{
		{name: "Empty stack", trace: StackTrace{}, expected: nil},
		{
			name:     "Single frame",
			trace:    StackTrace{{FunctionName: "Main", Position: &Position{ByteOffset: 1, TokenIndex: 1}}},
			expected: stringPtr("Main"),
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "Main", Position: &Position{ByteOffset: 20, TokenIndex: 1}},
				{FunctionName: "Foo", Position: &Position{ByteOffset: 15, TokenIndex: 5}},
				{FunctionName: "Bar", Position: &Position{ByteOffset: 10, TokenIndex: 3}},
			},
			expected: stringPtr("Main"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bottom := tt.trace.Bottom()
			if tt.expected == nil {
				if bottom != nil {
					t.Errorf("Expected nil, got %v", bottom)
				}
			} else if bottom == nil {
				t.Errorf("Expected %q, got nil", *tt.expected)
			} else if bottom.FunctionName != *tt.expected {
				t.Errorf("Expected %q, got %q", *tt.expected, bottom.FunctionName)
			}
		})
	}
}

func TestStackTrace_Depth(t *testing.T) {
	tests := []struct {
		name     string
		trace    StackTrace
		expected int
	}{
		{name: "Empty stack", trace: StackTrace{}, expected: 0},
		{name: "Single frame", trace: StackTrace{{FunctionName: "Main"}}, expected: 1},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "Main"},
				{FunctionName: "Foo"},
				{FunctionName: "Bar"},
			},
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depth := tt.trace.Depth()
			if depth != tt.expected {
				t.Errorf("Expected depth %d, got %d", tt.expected, depth)
			}
		})
	}
}

func TestNewStackFrame(t *testing.T) {
	pos := &Position{ByteOffset: 42, TokenIndex: 13}
	frame := NewStackFrame("TestFunc", "test.in", pos)

	if frame.FunctionName != "TestFunc" {
		t.Errorf("Expected FunctionName 'TestFunc', got %q", frame.FunctionName)
	}
	if frame.FileName != "test.in" {
		t.Errorf("Expected FileName 'test.in', got %q", frame.FileName)
	}
	if frame.Position != pos {
		t.Errorf("Expected position %v, got %v", pos, frame.Position)
	}
}

func TestNewStackTrace(t *testing.T) {
	trace := NewStackTrace()

	if trace == nil {
		t.Error("NewStackTrace returned nil")
	}
	if len(trace) != 0 {
		t.Errorf("Expected empty stack trace, got length %d", len(trace))
	}
}

func TestStackTrace_RealWorldScenario(t *testing.T) {
	trace := StackTrace{
		{FunctionName: "Main", FileName: "main.in", Position: &Position{ByteOffset: 50, TokenIndex: 1}},
		{FunctionName: "ProcessData", FileName: "main.in", Position: &Position{ByteOffset: 30, TokenIndex: 5}},
		{FunctionName: "ValidateInput", FileName: "main.in", Position: &Position{ByteOffset: 10, TokenIndex: 3}},
	}

	expected := "ValidateInput [byte: 10, token: 3]\nProcessData [byte: 30, token: 5]\nMain [byte: 50, token: 1]"
	result := trace.String()
	if result != expected {
		t.Errorf("Stack trace string doesn't match.\nExpected:\n%s\nGot:\n%s", expected, result)
	}

	if trace.Depth() != 3 {
		t.Errorf("Expected depth 3, got %d", trace.Depth())
	}

	top := trace.Top()
	if top == nil || top.FunctionName != "ValidateInput" {
		t.Errorf("Expected top to be ValidateInput, got %v", top)
	}

	bottom := trace.Bottom()
	if bottom == nil || bottom.FunctionName != "Main" {
		t.Errorf("Expected bottom to be Main, got %v", bottom)
	}
}

func TestStackTrace_StringFormat(t *testing.T) {
	trace := StackTrace{
		{FunctionName: "CallsABomb", Position: &Position{ByteOffset: 8, TokenIndex: 4}},
		{FunctionName: "ThisOneBombs", Position: &Position{ByteOffset: 3, TokenIndex: 20}},
	}

	result := trace.String()
	lines := strings.Split(result, "\n")

	if lines[0] != "ThisOneBombs [byte: 3, token: 20]" {
		t.Errorf("First line doesn't match expected format: %q", lines[0])
	}
	if lines[1] != "CallsABomb [byte: 8, token: 4]" {
		t.Errorf("Second line doesn't match expected format: %q", lines[1])
	}
}

// Helper function for tests
func stringPtr(s string) *string {
	return &s
}
