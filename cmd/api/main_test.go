package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// El middleware de swagger hace panic en el arranque si el archivo
// configurado no existe; el spec debe acompañar al repo y ser JSON válido.
func TestSwaggerSpec_ExisteYEsJSONValido(t *testing.T) {
	// Los tests corren en cmd/api; el server corre desde la raíz del repo.
	path := filepath.Join("..", "..", swaggerSpecPath)

	data, err := os.ReadFile(path)
	require.NoError(t, err, "docs/swagger.json debe existir en el repo")

	var spec map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &spec), "el spec debe ser JSON válido")
	assert.Equal(t, "2.0", spec["swagger"], "debe declarar la versión de swagger")
	assert.NotEmpty(t, spec["paths"], "el spec debe documentar endpoints")
}
