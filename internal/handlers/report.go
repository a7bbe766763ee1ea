package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/diewo77/retail-pos/internal/httpx"
	"github.com/diewo77/retail-pos/internal/services"
	"github.com/diewo77/retail-pos/internal/validation"
)

// ReportHandler serves the read-only projections. Every dated endpoint takes
// ?start=yyyy-mm-dd&end=yyyy-mm-dd; adding &format=csv downloads the same
// rows as a CSV file.
type ReportHandler struct {
	Svc *services.ReportService
}

func NewReportHandler(svc *services.ReportService) *ReportHandler { return &ReportHandler{Svc: svc} }

func dateRange(r *http.Request) (start, end string, v validation.Violations) {
	start = r.URL.Query().Get("start")
	end = r.URL.Query().Get("end")
	v = validation.Violations{}
	validation.Required("start", start, v)
	validation.Required("end", end, v)
	if start != "" {
		validation.ISODate("start", start, v)
	}
	if end != "" {
		validation.ISODate("end", end, v)
	}
	return start, end, v
}

func wantsCSV(r *http.Request) bool { return r.URL.Query().Get("format") == "csv" }

func writeCSV(w http.ResponseWriter, filename string, header []string, records [][]string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	cw := csv.NewWriter(w)
	_ = cw.Write(header)
	_ = cw.WriteAll(records)
	cw.Flush()
}

func f2(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func (h *ReportHandler) Bills(w http.ResponseWriter, r *http.Request) {
	start, end, v := dateRange(r)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	rows, err := h.Svc.BillReport(start, end)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "report_failed", nil)
		return
	}
	if wantsCSV(r) {
		records := make([][]string, 0, len(rows))
		for _, row := range rows {
			records = append(records, []string{
				strconv.Itoa(int(row.BillID)), row.BillDate, row.ProductName, row.Size,
				strconv.Itoa(row.Quantity), f2(row.Rate), f2(row.Amount), row.CustomerName, f2(row.BillTotal),
			})
		}
		writeCSV(w, "bill_report.csv",
			[]string{"Bill No", "Bill Date", "Product Name", "Size", "Quantity", "Rate", "Amount", "Customer Name", "Bill Total"},
			records)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

func (h *ReportHandler) Purchases(w http.ResponseWriter, r *http.Request) {
	start, end, v := dateRange(r)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var vendorID uint
	if s := r.URL.Query().Get("vendor_id"); s != "" && s != "all" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			vendorID = uint(n)
		}
	}
	rows, err := h.Svc.PurchaseReport(start, end, vendorID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "report_failed", nil)
		return
	}
	if wantsCSV(r) {
		records := make([][]string, 0, len(rows))
		for _, row := range rows {
			records = append(records, []string{
				strconv.Itoa(int(row.POID)), row.PurchaseDate, row.VendorName, row.ProductName,
				strconv.Itoa(row.Quantity), f2(row.Rate), f2(row.Amount), f2(row.GrandTotal),
			})
		}
		writeCSV(w, "purchase_report.csv",
			[]string{"PO No", "Purchase Date", "Vendor", "Product Name", "Quantity", "Rate", "Total Amount", "PO Grand Total"},
			records)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

func (h *ReportHandler) Stock(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Svc.StockReport()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "report_failed", nil)
		return
	}
	if wantsCSV(r) {
		records := make([][]string, 0, len(rows))
		for _, row := range rows {
			records = append(records, []string{
				strconv.Itoa(int(row.ProductID)), row.ProductName, row.Type, row.Size,
				f2(row.SellingPrice), strconv.Itoa(row.Stock),
			})
		}
		writeCSV(w, "stock_report.csv",
			[]string{"Product ID", "Product Name", "Type", "Size", "Selling Price", "Available Stock"},
			records)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

func (h *ReportHandler) StockRange(w http.ResponseWriter, r *http.Request) {
	start, end, v := dateRange(r)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	rows, err := h.Svc.StockReportWithDates(start, end)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "report_failed", nil)
		return
	}
	if wantsCSV(r) {
		records := make([][]string, 0, len(rows))
		for _, row := range rows {
			records = append(records, []string{
				row.ProductName, row.Type, row.Size,
				strconv.Itoa(row.OpeningStock), strconv.Itoa(row.ClosingStock),
				strconv.Itoa(row.SalesQty), strconv.Itoa(row.PurchaseQty),
			})
		}
		writeCSV(w, "stock_report_range.csv",
			[]string{"Product Name", "Type", "Size", "Opening Stock", "Closing Stock", "Sales (Period)", "Purchases (Period)"},
			records)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

func (h *ReportHandler) productTotals(w http.ResponseWriter, r *http.Request, fetch func(string, string) ([]services.ProductTotalRow, error), filename, qtyLabel, valueLabel string) {
	start, end, v := dateRange(r)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	rows, err := fetch(start, end)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "report_failed", nil)
		return
	}
	if wantsCSV(r) {
		records := make([][]string, 0, len(rows))
		for _, row := range rows {
			records = append(records, []string{row.ProductName, row.Size, strconv.Itoa(row.Quantity), f2(row.Value)})
		}
		writeCSV(w, filename, []string{"Product Name", "Size", qtyLabel, valueLabel}, records)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

func (h *ReportHandler) ProductSales(w http.ResponseWriter, r *http.Request) {
	h.productTotals(w, r, h.Svc.ProductWiseSales, "product_sales.csv", "Total Quantity Sold", "Total Sales Value")
}

func (h *ReportHandler) ProductPurchases(w http.ResponseWriter, r *http.Request) {
	h.productTotals(w, r, h.Svc.ProductWisePurchases, "product_purchases.csv", "Total Quantity Purchased", "Total Purchase Value")
}

func (h *ReportHandler) BulkLitre(w http.ResponseWriter, r *http.Request) {
	start, end, v := dateRange(r)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	rows, err := h.Svc.BulkLitreReport(start, end)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "report_failed", nil)
		return
	}
	if wantsCSV(r) {
		records := make([][]string, 0, len(rows))
		for _, row := range rows {
			records = append(records, []string{row.ProductName, fmt.Sprintf("%.3f", row.TotalLitres)})
		}
		writeCSV(w, "bulk_litre_report.csv", []string{"Product Name", "Total Litres Sold"}, records)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}
