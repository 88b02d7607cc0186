package id

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWithPrefix(t *testing.T) {
	constructors := map[string]func() (string, error){
		PrefixUser:     NewUserID,
		PrefixSession:  NewSessionID,
		PrefixTodolist: NewTodolistID,
		PrefixTask:     NewTaskID,
	}

	for prefix, newID := range constructors {
		t.Run(prefix, func(t *testing.T) {
			a, err := newID()
			require.NoError(t, err)
			b, err := newID()
			require.NoError(t, err)

			assert.NotEqual(t, a, b)
			assert.Len(t, a, len(prefix)+1+DefaultLength)
			assert.NoError(t, ValidatePrefix(a, prefix))
		})
	}
}

func TestValidatePrefix(t *testing.T) {
	tests := []struct {
		in      string
		prefix  string
		wantErr bool
	}{
		{"tdl_abc123", PrefixTodolist, false},
		{"tsk_abc123", PrefixTodolist, true},
		{"tdl_", PrefixTodolist, true},
		{"tdl_abc-123", PrefixTodolist, true},
		{"nounderscore", PrefixTodolist, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := ValidatePrefix(tt.in, tt.prefix)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func FuzzParsePrefixedID(f *testing.F) {
	for _, seed := range []string{"usr_x", "", "nounderscore", "_lead", "trail_", "a_b_c", "中文_测试"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			return
		}

		prefix, shortID, err := ParsePrefixedID(input)
		if !strings.Contains(input, "_") {
			if err == nil {
				t.Errorf("ParsePrefixedID(%q) should fail without underscore", input)
			}
			return
		}
		if err != nil {
			t.Fatalf("ParsePrefixedID(%q) unexpected error: %v", input, err)
		}
		if prefix+"_"+shortID != input {
			t.Errorf("round trip mismatch: %q + %q != %q", prefix, shortID, input)
		}
		if strings.Contains(prefix, "_") {
			t.Errorf("prefix %q must not contain underscore", prefix)
		}
	})
}
