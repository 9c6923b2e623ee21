package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/suplegear-api/internal/application/usecase"
	"github.com/jhoicas/suplegear-api/internal/infrastructure/memory"
)

func TestParseCatalog_UTF8(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<catalogo>
  <categoria nombre="Proteínas" icono="whey.svg">Suplementos proteicos</categoria>
  <categoria nombre=" Creatinas ">  Monohidrato y más </categoria>
  <categoria nombre="">sin nombre</categoria>
  <categoria nombre="proteínas">repetida</categoria>
</catalogo>`

	got, err := parseCatalog(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Proteínas", got[0].Name)
	assert.Equal(t, "whey.svg", got[0].Icon)
	assert.Equal(t, "Suplementos proteicos", got[0].Description)
	assert.Equal(t, "Creatinas", got[1].Name)
	assert.Equal(t, "Monohidrato y más", got[1].Description)
}

func TestParseCatalog_ISO88591(t *testing.T) {
	var src bytes.Buffer
	src.WriteString(`<?xml version="1.0" encoding="ISO-8859-1"?><catalogo><categoria nombre="Prote`)
	src.WriteByte(0xED) // í en latin1
	src.WriteString(`nas"/></catalogo>`)

	got, err := parseCatalog(&src)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Proteínas", got[0].Name)
}

func TestParseCatalog_CharsetDesconocido(t *testing.T) {
	_, err := parseCatalog(strings.NewReader(`<?xml version="1.0" encoding="EBCDIC"?><catalogo/>`))
	assert.Error(t, err)
}

func TestImportCategories_Idempotente(t *testing.T) {
	ctx := context.Background()
	categories := usecase.NewCategoryUseCase(memory.NewStore())
	requests, err := parseCatalog(strings.NewReader(`<catalogo><categoria nombre="Proteínas"/><categoria nombre="Vitaminas"/></catalogo>`))
	require.NoError(t, err)

	created, skipped, err := importCategories(ctx, categories, requests)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 0, skipped)

	created, skipped, err = importCategories(ctx, categories, requests)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Equal(t, 2, skipped)
}
