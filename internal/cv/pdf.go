package cv

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF renders the aggregate document as a paginated PDF. Pure function
// of the document; no database access.
func RenderPDF(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Curriculum Vitae", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Curriculum Vitae", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Perfil #%d", doc.ProfileID), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	section(pdf, "Experiencia laboral")
	if len(doc.ExperienciaLaboral) == 0 {
		emptyLine(pdf)
	}
	for _, exp := range doc.ExperienciaLaboral {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, fmt.Sprintf("%s - %s", exp.Empresa, exp.Cargo), "", 1, "L", false, 0, "")
		if exp.Descripcion != "" {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, exp.Descripcion, "", "L", false)
		}
		pdf.Ln(1)
	}

	section(pdf, "Educacion")
	if len(doc.Educacion) == 0 {
		emptyLine(pdf)
	}
	for _, edu := range doc.Educacion {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, fmt.Sprintf("%s - %s", edu.Universidad, edu.Carrera), "", 1, "L", false, 0, "")
		if edu.FechaInicio != "" || edu.FechaFin != "" {
			pdf.SetFont("Helvetica", "", 10)
			pdf.CellFormat(0, 5, fmt.Sprintf("%s a %s", edu.FechaInicio, edu.FechaFin), "", 1, "L", false, 0, "")
		}
		pdf.Ln(1)
	}

	section(pdf, "Cursos")
	if len(doc.Cursos) == 0 {
		emptyLine(pdf)
	}
	for _, curso := range doc.Cursos {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, curso.NombreCurso, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		if curso.Descripcion != "" {
			pdf.MultiCell(0, 5, curso.Descripcion, "", "L", false)
		}
		if curso.Curso != "" {
			pdf.CellFormat(0, 5, curso.Curso, "", 1, "L", false, 0, "")
		}
		pdf.Ln(1)
	}

	section(pdf, "Habilidades")
	if len(doc.Habilidades) == 0 {
		emptyLine(pdf)
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, skill := range doc.Habilidades {
		pdf.CellFormat(0, 5, fmt.Sprintf("Habilidad #%d", skill.SkillID), "", 1, "L", false, 0, "")
	}

	section(pdf, "Idiomas")
	if len(doc.Idiomas) == 0 {
		emptyLine(pdf)
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, lang := range doc.Idiomas {
		pdf.CellFormat(0, 5, fmt.Sprintf("Idioma #%d", lang.LanguageID), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render cv pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func emptyLine(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 5, "Sin registros", "", 1, "L", false, 0, "")
}
