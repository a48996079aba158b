package envstruct_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/okoskine/fitcoach/internal/envstruct"
)

func TestPopulate(t *testing.T) {
	type tagged struct {
		EnvVar string `env:"ENV_VAR"`
	}
	type defaulted struct {
		EnvVar string `env:"ENV_VAR" envDefault:"fallback"`
	}
	type untagged struct {
		Ignored string
	}

	tests := []struct {
		name      string
		v         any
		lookupEnv func(string) (string, bool)
		want      any
		wantErr   error
	}{
		{
			name:      "nil",
			v:         nil,
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      nil,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "not pointer",
			v:         struct{}{},
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      nil,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "empty struct",
			v:         &struct{}{},
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      &struct{}{},
			wantErr:   nil,
		},
		{
			name:      "env not set",
			v:         &tagged{},
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      nil,
			wantErr:   envstruct.ErrEnvNotSet,
		},
		{
			name:      "env is set",
			v:         &tagged{},
			lookupEnv: func(_ string) (string, bool) { return "env_var", true },
			want:      &tagged{EnvVar: "env_var"},
			wantErr:   nil,
		},
		{
			name:      "default applies when env not set",
			v:         &defaulted{},
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      &defaulted{EnvVar: "fallback"},
			wantErr:   nil,
		},
		{
			name:      "env wins over default",
			v:         &defaulted{},
			lookupEnv: func(_ string) (string, bool) { return "env_var", true },
			want:      &defaulted{EnvVar: "env_var"},
			wantErr:   nil,
		},
		{
			name:      "untagged field is ignored",
			v:         &untagged{},
			lookupEnv: func(_ string) (string, bool) { return "env_var", true },
			want:      &untagged{},
			wantErr:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := envstruct.Populate(tt.v, tt.lookupEnv)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Populate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Populate() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, tt.v); diff != "" {
				t.Errorf("Populate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPopulateNonStringField(t *testing.T) {
	v := &struct {
		Number int `env:"NUMBER"`
	}{}
	err := envstruct.Populate(v, func(_ string) (string, bool) { return "42", true })
	if !errors.Is(err, envstruct.ErrInvalidValue) {
		t.Fatalf("Populate() error = %v, want %v", err, envstruct.ErrInvalidValue)
	}
	if !strings.Contains(err.Error(), "only strings are supported") {
		t.Errorf("Populate() error %q does not name the unsupported kind", err)
	}
}
