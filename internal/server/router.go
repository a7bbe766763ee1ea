package server

import (
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/retail-pos/internal/handlers"
	"github.com/diewo77/retail-pos/internal/httpx"
	"github.com/diewo77/retail-pos/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	docs := services.NewDocumentService(db)
	reports := services.NewReportService(db)
	store := services.NewStoreService(db)
	auto := services.NewAutoBillService(db, docs)

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Master data. List/Create via the collection path; Update/Delete via
	// /<collection>/update & /<collection>/delete for simplicity.
	ph := handlers.NewProductHandler(db)
	mux.HandleFunc("/products", listCreate(ph.List, ph.Create))
	mux.HandleFunc("/products/update", ph.Update)
	mux.HandleFunc("/products/delete", ph.Delete)

	ch := handlers.NewCustomerHandler(db)
	mux.HandleFunc("/customers", listCreate(ch.List, ch.Create))
	mux.HandleFunc("/customers/update", ch.Update)
	mux.HandleFunc("/customers/delete", ch.Delete)

	vh := handlers.NewVendorHandler(db)
	mux.HandleFunc("/vendors", listCreate(vh.List, vh.Create))
	mux.HandleFunc("/vendors/update", vh.Update)
	mux.HandleFunc("/vendors/delete", vh.Delete)

	th := handlers.NewTaxHandler(db)
	mux.HandleFunc("/taxes", listCreate(th.List, th.Create))
	mux.HandleFunc("/taxes/update", th.Update)
	mux.HandleFunc("/taxes/delete", th.Delete)

	// Bills
	bh := handlers.NewBillHandler(db, docs, auto)
	mux.HandleFunc("/bills", listCreate(bh.List, bh.Create))
	mux.HandleFunc("/bills/detail", bh.Get)
	mux.HandleFunc("/bills/update", bh.Update)
	mux.HandleFunc("/bills/delete", bh.Delete)
	mux.HandleFunc("/bills/auto-generate", bh.AutoGenerate)

	// Purchase orders. No delete route: received goods stay on the books.
	poh := handlers.NewPurchaseOrderHandler(docs, reports)
	mux.HandleFunc("/purchase-orders", listCreate(poh.List, poh.Create))
	mux.HandleFunc("/purchase-orders/detail", poh.Get)
	mux.HandleFunc("/purchase-orders/update", poh.Update)

	// Printable documents
	rch := handlers.NewReceiptHandler(docs, store)
	mux.HandleFunc("/bills/receipt", rch.BillHTML)
	mux.HandleFunc("/bills/receipt.pdf", rch.BillPDF)
	mux.HandleFunc("/purchase-orders/document.pdf", rch.PurchaseOrderPDF)

	// Reports (JSON by default, ?format=csv for download)
	rh := handlers.NewReportHandler(reports)
	mux.HandleFunc("/reports/bills", rh.Bills)
	mux.HandleFunc("/reports/purchases", rh.Purchases)
	mux.HandleFunc("/reports/stock", rh.Stock)
	mux.HandleFunc("/reports/stock-range", rh.StockRange)
	mux.HandleFunc("/reports/product-sales", rh.ProductSales)
	mux.HandleFunc("/reports/product-purchases", rh.ProductPurchases)
	mux.HandleFunc("/reports/bulk-litre", rh.BulkLitre)

	// Store profile
	sh := handlers.NewStoreHandler(store)
	mux.HandleFunc("/store", sh.Handle)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Retail POS API - see /health"))
	})
	//revive:enable:unused-parameter

	return withRecover(withLogging(mux))
}

func listCreate(list, create http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list(w, r)
		case http.MethodPost:
			create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}
}

// Simple middleware logging & recovery kept private to this package to avoid duplication.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
