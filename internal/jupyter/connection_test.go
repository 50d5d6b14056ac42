package jupyter

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-kuro/nbloc/internal/errors"
)

func TestKernelIDFromConnectionFile(t *testing.T) {
	id := uuid.NewString()

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{
			name: "runtime dir path",
			path: "/home/u/.local/share/jupyter/runtime/kernel-" + id + ".json",
			want: id,
		},
		{
			name: "bare basename",
			path: "kernel-" + id + ".json",
			want: id,
		},
		{
			name: "identifier stops at first dot",
			path: "kernel-abc.def.json",
			want: "abc",
		},
		{
			name: "no extension",
			path: "kernel-xyz",
			want: "xyz",
		},
		{
			name:    "no dash",
			path:    "connection.json",
			wantErr: true,
		},
		{
			name:    "empty identifier",
			path:    "kernel-.json",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KernelIDFromConnectionFile(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConnectionFileFromArgs(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		want   string
		wantOK bool
	}{
		{"short flag", []string{"gokernel", "-f", "/rt/kernel-1.json"}, "/rt/kernel-1.json", true},
		{"long flag with value", []string{"gokernel", "--f=/rt/kernel-2.json"}, "/rt/kernel-2.json", true},
		{"short flag with value", []string{"gokernel", "-f=/rt/kernel-3.json"}, "/rt/kernel-3.json", true},
		{"bare argument", []string{"gokernel", "/rt/kernel-4.json"}, "/rt/kernel-4.json", true},
		{"dangling flag", []string{"gokernel", "-f"}, "", false},
		{"nothing", []string{"gokernel", "--debug"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ConnectionFileFromArgs(tt.args)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvKernelID(t *testing.T) {
	env := &Env{}
	_, err := env.KernelID()
	assert.True(t, errors.Is(err, ErrNoConnectionFile))
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	env.ConnectionFile = "/tmp/kernel-42.json"
	id, err := env.KernelID()
	require.NoError(t, err)
	assert.Equal(t, "42", id)
}
