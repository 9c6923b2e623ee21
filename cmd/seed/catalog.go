package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/suplegear-api/internal/application/dto"
)

// catalogo formato del XML de categorías:
//
//	<catalogo>
//	  <categoria nombre="Proteínas" icono="whey.svg">Suplementos proteicos</categoria>
//	</catalogo>
type catalogo struct {
	Categorias []categoria `xml:"categoria"`
}

type categoria struct {
	Nombre      string `xml:"nombre,attr"`
	Icono       string `xml:"icono,attr"`
	Descripcion string `xml:",chardata"`
}

// parseCatalog lee el catálogo en UTF-8 o ISO-8859-1 (según la declaración XML).
// Descarta entradas sin nombre y nombres repetidos.
func parseCatalog(r io.Reader) ([]dto.CreateCategoryRequest, error) {
	var c catalogo
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		switch strings.ToUpper(charset) {
		case "ISO-8859-1", "ISO8859-1", "LATIN1":
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		case "WINDOWS-1252", "CP1252":
			return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
		}
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decodificar catálogo: %w", err)
	}

	seen := make(map[string]bool, len(c.Categorias))
	out := make([]dto.CreateCategoryRequest, 0, len(c.Categorias))
	for _, cat := range c.Categorias {
		name := strings.TrimSpace(cat.Nombre)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, dto.CreateCategoryRequest{
			Name:        name,
			Description: strings.TrimSpace(cat.Descripcion),
			Icon:        strings.TrimSpace(cat.Icono),
		})
	}
	return out, nil
}
