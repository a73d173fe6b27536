package infra

// pdf.go — comprovante de doação em PDF usando go-pdf/fpdf.
// Gera um documento A5 com os dados do doador, as datas da doação e a tabela
// de produtos do lote. O arquivo é salvo em storagePath/comprovante_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glaucoaluno/AjudaOngs/internal/model"

	"github.com/go-pdf/fpdf"
)

// GerarComprovantePDF generates the delivery receipt for a donation.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GerarComprovantePDF(doacao *model.Doacao, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("comprovante_%s.pdf", doacao.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 8, "AjudaOngs", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Comprovante de Doacao", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Dados da doação ──────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	if doacao.Doador != nil {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Doador: %s", doacao.Doador.Nome), "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, fmt.Sprintf("Data da doacao: %s", doacao.DataDoacao.Format("02/01/2006")), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, fmt.Sprintf("Entrada no estoque: %s", doacao.DataEntrada.Format("02/01/2006")), "", 1, "L", false, 0, "")
	if doacao.DataEntrega != nil {
		pdf.CellFormat(contentW, 4, fmt.Sprintf("Entregue em: %s", doacao.DataEntrega.Format("02/01/2006")), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Separator ────────────────────────────────────────────────────────────
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	// ── Tabela de produtos ───────────────────────────────────────────────────
	col1 := contentW * 0.50 // nome
	col2 := contentW * 0.20 // quantidade
	col3 := contentW * 0.30 // validade

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Produto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qtd", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Validade", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	total := 0
	for i := range doacao.Produtos {
		p := &doacao.Produtos[i]
		pdf.CellFormat(col1, 5, p.Nome, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("%d", p.Unidade), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, p.Validade, "", 1, "R", false, 0, "")
		total += p.Unidade
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Total de unidades: %d", total), "T", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
