package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNotebook(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
		check   func(t *testing.T, nb Notebook)
	}{
		{
			name: "fragment list source",
			data: `{"cells": [{"cell_type": "code", "source": ["import os\n", "print(1)"], "execution_count": 2, "outputs": [{"output_type": "stream"}]}]}`,
			check: func(t *testing.T, nb Notebook) {
				require.Len(t, nb.Cells, 1)
				assert.Equal(t, CellCode, nb.Cells[0].Kind)
				assert.Equal(t, CellSource("import os\nprint(1)"), nb.Cells[0].Source)
				assert.True(t, nb.Cells[0].Executed())
				assert.Len(t, nb.Cells[0].Outputs, 1)
			},
		},
		{
			name: "string and null sources",
			data: `{"cells": [{"cell_type": "raw", "source": "  answer \n"}, {"cell_type": "markdown", "source": null}]}`,
			check: func(t *testing.T, nb Notebook) {
				assert.Equal(t, "answer", nb.Cells[0].Text())
				assert.Empty(t, nb.Cells[1].Text())
			},
		},
		{
			name: "null execution count",
			data: `{"cells": [{"cell_type": "code", "source": "x", "execution_count": null, "outputs": []}]}`,
			check: func(t *testing.T, nb Notebook) {
				assert.False(t, nb.Cells[0].Executed())
				assert.Empty(t, nb.Cells[0].Outputs)
			},
		},
		{
			name: "empty cells array",
			data: `{"cells": []}`,
			check: func(t *testing.T, nb Notebook) {
				assert.Empty(t, nb.Cells)
			},
		},
		{name: "no cells", data: `{"metadata": {}}`, wantErr: ErrNoCells},
		{name: "missing cell type", data: `{"cells": [{"source": "x"}]}`, wantErr: ErrMissingCellType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nb, err := ParseNotebook([]byte(tt.data))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.check(t, nb)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		_, err := ParseNotebook([]byte("{"))
		require.Error(t, err)
	})

	t.Run("numeric source", func(t *testing.T) {
		_, err := ParseNotebook([]byte(`{"cells": [{"cell_type": "raw", "source": 7}]}`))
		require.Error(t, err)
	})
}
