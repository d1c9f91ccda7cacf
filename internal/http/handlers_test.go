package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/auth"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/cart"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/checkout"
	api "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/http"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/http/handlers"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
	repo "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/repo"
)

var (
	productRepo  *repo.InMemoryProductRepository
	movementRepo *repo.InMemoryMovementRepository
	saleRepo     *repo.InMemorySaleRepository
	auditRepo    *repo.InMemoryAuditRepository

	adminToken   string
	managerToken string
	cashierToken string
)

func init() {
	auth.Configure("test-secret", time.Hour)
	setupTestRepos()

	r := api.NewRouter()
	var err error
	if adminToken, err = generateToken(r, "admin", "secret1"); err != nil {
		panic(fmt.Sprintf("error generating admin token: %v", err))
	}
	if managerToken, err = generateToken(r, "manager", "secret2"); err != nil {
		panic(fmt.Sprintf("error generating manager token: %v", err))
	}
	if cashierToken, err = generateToken(r, "cashier", "secret3"); err != nil {
		panic(fmt.Sprintf("error generating cashier token: %v", err))
	}
}

func setupTestRepos() {
	loc, _ := time.LoadLocation("Asia/Manila")

	productRepo = repo.NewInMemoryProductRepository()
	movementRepo = repo.NewInMemoryMovementRepository()
	saleRepo = repo.NewInMemorySaleRepository(productRepo, movementRepo)
	auditRepo = repo.NewInMemoryAuditRepository()

	handlers.SetProductRepo(productRepo)
	handlers.SetMovementRepo(movementRepo)
	handlers.SetSaleRepo(saleRepo)
	handlers.SetAuditRepo(auditRepo)
	handlers.SetIngredientRepo(repo.NewInMemoryIngredientRepository())
	handlers.SetMetricsRepo(repo.NewInMemoryMetricsRepository(saleRepo, productRepo))
	handlers.SetSettingsRepo(repo.NewInMemorySettingsRepository())

	userRepo := repo.NewInMemoryUserRepository()
	handlers.SetUserRepo(userRepo)
	for _, u := range []struct {
		username, password, role string
	}{
		{"admin", "secret1", models.RoleAdmin},
		{"manager", "secret2", models.RoleManager},
		{"cashier", "secret3", models.RoleCashier},
	} {
		hashed, _ := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.MinCost)
		userRepo.CreateUser(models.User{
			Username:     u.username,
			PasswordHash: string(hashed),
			Role:         u.role,
		})
	}

	handlers.SetCartStore(cart.NewStore())
	handlers.SetCheckoutService(checkout.NewService(saleRepo, loc))
	handlers.SetStoreLocation(loc)
}

func generateToken(r http.Handler, username, password string) (string, error) {
	body, _ := json.Marshal(handlers.CredentialsRequest{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d: %s", w.Code, w.Body.String())
	}
	var res handlers.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		return "", err
	}
	return res.Token, nil
}

func doRequest(r http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		jsonBody, _ := json.Marshal(payload)
		body = bytes.NewReader(jsonBody)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(t *testing.T, r http.Handler, p handlers.ProductRequest) handlers.ProductResponse {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/products", managerToken, p)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created for product creation, got %d: %s", w.Code, w.Body.String())
	}
	var created handlers.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding create response: %v", err)
	}
	return created
}

func openCart(t *testing.T, r http.Handler) string {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/carts", cashierToken, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created for cart creation, got %d", w.Code)
	}
	var created handlers.CartCreatedResult
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding cart response: %v", err)
	}
	return created.CartID
}

func addToCart(t *testing.T, r http.Handler, cartID string, productID, times int) {
	t.Helper()
	for i := 0; i < times; i++ {
		w := doRequest(r, http.MethodPost, "/carts/"+cartID+"/items", cashierToken, handlers.CartItemRequest{ProductID: productID})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK adding to cart, got %d: %s", w.Code, w.Body.String())
		}
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(productRepo.Clear)
	r := api.NewRouter()

	created := createProduct(t, r, handlers.ProductRequest{
		Name: "Iced Latte", Price: 112.0, Category: "Drinks", Stock: 10, MinStock: 3, SKU: "DR-001",
	})

	if created.Name != "Iced Latte" {
		t.Errorf("expected name 'Iced Latte', got %v", created.Name)
	}
	if created.Price != 112.0 {
		t.Errorf("expected price 112.0, got %v", created.Price)
	}
	if created.Stock != 10 {
		t.Errorf("expected stock 10, got %v", created.Stock)
	}
	if created.LowStock {
		t.Error("did not expect low stock flag at stock 10, min 3")
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(productRepo.Clear)
	r := api.NewRouter()

	tests := []struct {
		name           string
		payload        handlers.ProductRequest
		expectedFields []string
	}{
		{
			name:           "Empty name and price",
			payload:        handlers.ProductRequest{SKU: "X-1"},
			expectedFields: []string{"Name", "Price"},
		},
		{
			name:           "Missing SKU",
			payload:        handlers.ProductRequest{Name: "Mug", Price: 50},
			expectedFields: []string{"SKU"},
		},
		{
			name:           "Negative stock",
			payload:        handlers.ProductRequest{Name: "Mug", Price: 50, SKU: "X-2", Stock: -1},
			expectedFields: []string{"Stock"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/products", managerToken, tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}

			var errs []handlers.ProductValidationError
			if err := json.NewDecoder(w.Body).Decode(&errs); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			for _, field := range tt.expectedFields {
				found := false
				for _, e := range errs {
					if e.Field == field {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected validation error for field %q, but not found", field)
				}
			}
		})
	}
}

func TestProductDuplicateSKU(t *testing.T) {
	t.Cleanup(productRepo.Clear)
	r := api.NewRouter()

	createProduct(t, r, handlers.ProductRequest{Name: "Americano", Price: 95, SKU: "DR-010", Stock: 5})
	w := doRequest(r, http.MethodPost, "/products", managerToken,
		handlers.ProductRequest{Name: "Americano Twin", Price: 95, SKU: "DR-010", Stock: 5})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 Conflict for duplicated SKU, got %d", w.Code)
	}
}

func TestRoleEnforcement(t *testing.T) {
	t.Cleanup(productRepo.Clear)
	r := api.NewRouter()

	payload := handlers.ProductRequest{Name: "Scone", Price: 60, SKU: "FD-001", Stock: 4}

	if w := doRequest(r, http.MethodPost, "/products", cashierToken, payload); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for cashier creating product, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/products", "", payload); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodGet, "/audit", managerToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for manager reading audit log, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodGet, "/reports/summary", cashierToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for cashier reading reports, got %d", w.Code)
	}
}

func TestCheckoutFlow_Cash(t *testing.T) {
	t.Cleanup(func() {
		productRepo.Clear()
		saleRepo.Clear()
		movementRepo.Clear()
	})
	r := api.NewRouter()

	p := createProduct(t, r, handlers.ProductRequest{Name: "Iced Latte", Price: 112.0, Category: "Drinks", Stock: 10, MinStock: 2, SKU: "DR-100"})

	cartID := openCart(t, r)
	addToCart(t, r, cartID, p.Id, 2)

	cash := 300.0
	w := doRequest(r, http.MethodPost, "/carts/"+cartID+"/checkout", cashierToken, handlers.CheckoutRequest{
		PaymentMethod: models.PaymentCash,
		CashReceived:  &cash,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created for checkout, got %d: %s", w.Code, w.Body.String())
	}

	var receipt handlers.ReceiptResponse
	if err := json.NewDecoder(w.Body).Decode(&receipt); err != nil {
		t.Fatalf("error decoding receipt: %v", err)
	}

	if receipt.Sale.ID != "TXN-0001" {
		t.Errorf("expected transaction ID TXN-0001, got %v", receipt.Sale.ID)
	}
	if receipt.Sale.TotalAmount != 224.0 {
		t.Errorf("expected total 224.0, got %v", receipt.Sale.TotalAmount)
	}
	if receipt.Sale.Customer != "Walk-in Customer" {
		t.Errorf("expected the walk-in customer label, got %q", receipt.Sale.Customer)
	}
	if receipt.Sale.Change == nil || !almostEqual(*receipt.Sale.Change, 76.0) {
		t.Errorf("expected change 76.0, got %v", receipt.Sale.Change)
	}
	if !almostEqual(receipt.Subtotal, 200.0) {
		t.Errorf("expected net subtotal 200.0, got %v", receipt.Subtotal)
	}
	if !almostEqual(receipt.VATAmount, 24.0) {
		t.Errorf("expected VAT 24.0, got %v", receipt.VATAmount)
	}
	if !almostEqual(receipt.Subtotal+receipt.VATAmount, receipt.Sale.TotalAmount) {
		t.Error("expected subtotal plus VAT to equal the total")
	}

	// The committed sale decremented stock and the session is gone.
	updated, err := productRepo.GetByID(p.Id)
	if err != nil {
		t.Fatalf("error fetching product: %v", err)
	}
	if updated.Stock != 8 {
		t.Errorf("expected stock 8 after selling 2, got %d", updated.Stock)
	}
	if w := doRequest(r, http.MethodGet, "/carts/"+cartID, cashierToken, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for cart after checkout, got %d", w.Code)
	}

	// A second sale continues the sequence.
	cartID = openCart(t, r)
	addToCart(t, r, cartID, p.Id, 1)
	w = doRequest(r, http.MethodPost, "/carts/"+cartID+"/checkout", cashierToken, handlers.CheckoutRequest{
		PaymentMethod:    models.PaymentEPayment,
		PaymentSubMethod: models.SubMethodGCash,
		Customer:         "Maria Santos",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created for second checkout, got %d: %s", w.Code, w.Body.String())
	}
	var second handlers.ReceiptResponse
	json.NewDecoder(w.Body).Decode(&second)
	if second.Sale.ID != "TXN-0002" {
		t.Errorf("expected transaction ID TXN-0002, got %v", second.Sale.ID)
	}
	if second.Sale.Customer != "Maria Santos" {
		t.Errorf("expected named customer on receipt, got %q", second.Sale.Customer)
	}
}

func TestCheckout_InsufficientCashKeepsCart(t *testing.T) {
	t.Cleanup(func() {
		productRepo.Clear()
		saleRepo.Clear()
		movementRepo.Clear()
	})
	r := api.NewRouter()

	p := createProduct(t, r, handlers.ProductRequest{Name: "Mocha", Price: 100.0, Stock: 5, SKU: "DR-101"})
	cartID := openCart(t, r)
	addToCart(t, r, cartID, p.Id, 1)

	cash := 99.99
	w := doRequest(r, http.MethodPost, "/carts/"+cartID+"/checkout", cashierToken, handlers.CheckoutRequest{
		PaymentMethod: models.PaymentCash,
		CashReceived:  &cash,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for insufficient cash, got %d", w.Code)
	}

	// Nothing happened: stock untouched, cart still alive.
	updated, _ := productRepo.GetByID(p.Id)
	if updated.Stock != 5 {
		t.Errorf("expected stock still 5, got %d", updated.Stock)
	}
	if w := doRequest(r, http.MethodGet, "/carts/"+cartID, cashierToken, nil); w.Code != http.StatusOK {
		t.Errorf("expected cart to survive a failed checkout, got %d", w.Code)
	}
}

func TestCheckout_EPaymentSubMethod(t *testing.T) {
	t.Cleanup(func() {
		productRepo.Clear()
		saleRepo.Clear()
		movementRepo.Clear()
	})
	r := api.NewRouter()

	p := createProduct(t, r, handlers.ProductRequest{Name: "Taro Milk Tea", Price: 130.0, Stock: 5, SKU: "DR-102"})
	cartID := openCart(t, r)
	addToCart(t, r, cartID, p.Id, 1)

	w := doRequest(r, http.MethodPost, "/carts/"+cartID+"/checkout", cashierToken, handlers.CheckoutRequest{
		PaymentMethod: models.PaymentEPayment,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing sub-method, got %d", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/carts/"+cartID+"/checkout", cashierToken, handlers.CheckoutRequest{
		PaymentMethod:    models.PaymentEPayment,
		PaymentSubMethod: "PayPal",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown sub-method, got %d", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/carts/"+cartID+"/checkout", cashierToken, handlers.CheckoutRequest{
		PaymentMethod:    models.PaymentEPayment,
		PaymentSubMethod: models.SubMethodMaya,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for Maya checkout, got %d: %s", w.Code, w.Body.String())
	}
	var receipt handlers.ReceiptResponse
	json.NewDecoder(w.Body).Decode(&receipt)
	if receipt.Sale.CashReceived != nil || receipt.Sale.Change != nil {
		t.Error("expected no cash fields on an e-payment sale")
	}
}

func TestCartStockLimits(t *testing.T) {
	t.Cleanup(productRepo.Clear)
	r := api.NewRouter()

	p := createProduct(t, r, handlers.ProductRequest{Name: "Croissant", Price: 85.0, Stock: 2, SKU: "FD-100"})
	cartID := openCart(t, r)
	addToCart(t, r, cartID, p.Id, 2)

	// Third add exceeds the shelf.
	w := doRequest(r, http.MethodPost, "/carts/"+cartID+"/items", cashierToken, handlers.CartItemRequest{ProductID: p.Id})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 adding beyond stock, got %d", w.Code)
	}

	// Decrement to zero removes the line.
	w = doRequest(r, http.MethodPatch, fmt.Sprintf("/carts/%s/items/%d", cartID, p.Id), cashierToken, handlers.QuantityAdjustmentRequest{Delta: -2})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 decrementing to zero, got %d", w.Code)
	}
	var resp handlers.CartResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Items) != 0 {
		t.Errorf("expected empty cart after removing the only line, got %d items", len(resp.Items))
	}

	// Empty cart cannot check out.
	w = doRequest(r, http.MethodPost, "/carts/"+cartID+"/checkout", cashierToken, handlers.CheckoutRequest{
		PaymentMethod:    models.PaymentEPayment,
		PaymentSubMethod: models.SubMethodGCash,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 checking out an empty cart, got %d", w.Code)
	}
}

func TestCartSnapshotSurvivesRepricing(t *testing.T) {
	t.Cleanup(productRepo.Clear)
	r := api.NewRouter()

	p := createProduct(t, r, handlers.ProductRequest{Name: "Ham Sandwich", Price: 150.0, Stock: 5, SKU: "FD-101"})
	cartID := openCart(t, r)
	addToCart(t, r, cartID, p.Id, 1)

	// Reprice the product after it is in the cart.
	w := doRequest(r, http.MethodPut, fmt.Sprintf("/products/%d", p.Id), managerToken,
		handlers.ProductRequest{Name: "Ham Sandwich", Price: 180.0, Stock: 5, SKU: "FD-101"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 repricing product, got %d", w.Code)
	}

	w = doRequest(r, http.MethodGet, "/carts/"+cartID, cashierToken, nil)
	var resp handlers.CartResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Items) != 1 || resp.Items[0].Price != 150.0 {
		t.Errorf("expected the cart line to keep its price snapshot of 150.0, got %+v", resp.Items)
	}
}

func TestRestockAndMovements(t *testing.T) {
	t.Cleanup(func() {
		productRepo.Clear()
		movementRepo.Clear()
	})
	r := api.NewRouter()

	p := createProduct(t, r, handlers.ProductRequest{Name: "Beans 1kg", Price: 560.0, Stock: 2, MinStock: 5, SKU: "SUP-001"})

	w := doRequest(r, http.MethodPost, fmt.Sprintf("/products/%d/restock", p.Id), managerToken, handlers.RestockRequest{Quantity: 10})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for restock, got %d: %s", w.Code, w.Body.String())
	}
	var restocked handlers.ProductResponse
	json.NewDecoder(w.Body).Decode(&restocked)
	if restocked.Stock != 12 {
		t.Errorf("expected stock 12 after restock, got %d", restocked.Stock)
	}

	w = doRequest(r, http.MethodGet, fmt.Sprintf("/products/%d/movements", p.Id), managerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for movements, got %d", w.Code)
	}
	var movements handlers.MovementsSearchResult
	json.NewDecoder(w.Body).Decode(&movements)
	if movements.Meta.TotalCount != 1 {
		t.Fatalf("expected 1 movement, got %d", movements.Meta.TotalCount)
	}
	if movements.Data[0].Delta != 10 || movements.Data[0].Reason != models.MovementReasonRestock {
		t.Errorf("expected +10 restock movement, got %+v", movements.Data[0])
	}

	// Manual adjustment below zero is refused.
	w = doRequest(r, http.MethodPost, fmt.Sprintf("/products/%d/adjust", p.Id), managerToken, handlers.QuantityAdjustmentRequest{Delta: -20})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 adjusting below zero, got %d", w.Code)
	}
}

func TestIngredientLifecycle(t *testing.T) {
	r := api.NewRouter()

	w := doRequest(r, http.MethodPost, "/ingredients", managerToken, handlers.IngredientRequest{
		Name: "Whole Milk", Unit: "L", CurrentStock: 20, MinStock: 5,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating ingredient, got %d: %s", w.Code, w.Body.String())
	}
	var created handlers.IngredientResponse
	json.NewDecoder(w.Body).Decode(&created)

	// Unknown unit is rejected.
	w = doRequest(r, http.MethodPost, "/ingredients", managerToken, handlers.IngredientRequest{
		Name: "Flour", Unit: "bags", CurrentStock: 3,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown unit, got %d", w.Code)
	}

	w = doRequest(r, http.MethodPost, fmt.Sprintf("/ingredients/%d/adjust", created.Id), managerToken, handlers.QuantityAdjustmentRequest{Delta: -8})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 adjusting ingredient, got %d", w.Code)
	}
	var adjusted handlers.IngredientResponse
	json.NewDecoder(w.Body).Decode(&adjusted)
	if adjusted.CurrentStock != 12 {
		t.Errorf("expected stock 12, got %d", adjusted.CurrentStock)
	}

	w = doRequest(r, http.MethodPost, fmt.Sprintf("/ingredients/%d/adjust", created.Id), managerToken, handlers.QuantityAdjustmentRequest{Delta: -100})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 driving ingredient stock negative, got %d", w.Code)
	}

	// Cashiers cannot touch ingredients.
	if w := doRequest(r, http.MethodGet, "/ingredients", cashierToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for cashier listing ingredients, got %d", w.Code)
	}
}

func TestSalesReporting(t *testing.T) {
	t.Cleanup(func() {
		productRepo.Clear()
		saleRepo.Clear()
		movementRepo.Clear()
	})
	r := api.NewRouter()

	p := createProduct(t, r, handlers.ProductRequest{Name: "Iced Latte", Price: 112.0, Stock: 50, SKU: "DR-200"})

	for i := 0; i < 3; i++ {
		cartID := openCart(t, r)
		addToCart(t, r, cartID, p.Id, 1)
		w := doRequest(r, http.MethodPost, "/carts/"+cartID+"/checkout", cashierToken, handlers.CheckoutRequest{
			PaymentMethod:    models.PaymentEPayment,
			PaymentSubMethod: models.SubMethodGCash,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201 for checkout %d, got %d", i, w.Code)
		}
	}

	w := doRequest(r, http.MethodGet, "/reports/summary", managerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for summary, got %d", w.Code)
	}
	var summary handlers.SummaryResponse
	json.NewDecoder(w.Body).Decode(&summary)
	if summary.Transactions != 3 {
		t.Errorf("expected 3 transactions, got %d", summary.Transactions)
	}
	if !almostEqual(summary.TotalSales, 336.0) {
		t.Errorf("expected total sales 336.0, got %v", summary.TotalSales)
	}
	if !almostEqual(summary.AverageOrderValue, 112.0) {
		t.Errorf("expected average order 112.0, got %v", summary.AverageOrderValue)
	}
	if !almostEqual(summary.Subtotal+summary.VATAmount, summary.TotalSales) {
		t.Error("expected subtotal plus VAT to equal total sales")
	}

	w = doRequest(r, http.MethodGet, "/metrics/dashboard", managerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for dashboard, got %d", w.Code)
	}
	var dashboard repo.Metrics
	json.NewDecoder(w.Body).Decode(&dashboard)
	if dashboard.TodayTransactions != 3 {
		t.Errorf("expected 3 transactions today, got %d", dashboard.TodayTransactions)
	}
	if !almostEqual(dashboard.TodaySales, 336.0) {
		t.Errorf("expected today's sales 336.0, got %v", dashboard.TodaySales)
	}

	w = doRequest(r, http.MethodGet, "/reports/top-products", managerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for top products, got %d", w.Code)
	}
	var top []repo.TopProduct
	json.NewDecoder(w.Body).Decode(&top)
	if len(top) != 1 || top[0].QuantitySold != 3 {
		t.Errorf("expected one top product with 3 units sold, got %+v", top)
	}

	// Sales list is newest first and fetchable by ID.
	w = doRequest(r, http.MethodGet, "/sales", cashierToken, nil)
	var sales handlers.SalesSearchResult
	json.NewDecoder(w.Body).Decode(&sales)
	if sales.Meta.TotalCount != 3 {
		t.Fatalf("expected 3 sales, got %d", sales.Meta.TotalCount)
	}
	if sales.Data[0].ID != "TXN-0003" {
		t.Errorf("expected newest sale TXN-0003 first, got %v", sales.Data[0].ID)
	}

	w = doRequest(r, http.MethodGet, "/sales/TXN-0002", cashierToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching TXN-0002, got %d", w.Code)
	}
	var sale models.Sale
	json.NewDecoder(w.Body).Decode(&sale)
	if len(sale.Items) != 1 || sale.Items[0].ProductName != "Iced Latte" {
		t.Errorf("expected the sale to carry its item snapshot, got %+v", sale.Items)
	}

	// Deleting a sale is admin-only and does not restore stock.
	if w := doRequest(r, http.MethodDelete, "/sales/TXN-0003", managerToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for manager deleting a sale, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodDelete, "/sales/TXN-0003", adminToken, nil); w.Code != http.StatusNoContent {
		t.Errorf("expected 204 for admin deleting a sale, got %d", w.Code)
	}
	updated, _ := productRepo.GetByID(p.Id)
	if updated.Stock != 47 {
		t.Errorf("expected stock to stay at 47 after sale deletion, got %d", updated.Stock)
	}
}

func TestSettingsHandlers(t *testing.T) {
	r := api.NewRouter()

	w := doRequest(r, http.MethodGet, "/settings", cashierToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for settings, got %d", w.Code)
	}
	var settings map[string]string
	json.NewDecoder(w.Body).Decode(&settings)
	if settings[repo.SettingGCashQRURL] != "/gcash-qr.png" {
		t.Errorf("expected default GCash QR URL, got %q", settings[repo.SettingGCashQRURL])
	}

	// Only admins may write.
	body := map[string]string{repo.SettingStoreName: "Amari Cafe"}
	if w := doRequest(r, http.MethodPut, "/settings", managerToken, body); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for manager writing settings, got %d", w.Code)
	}
	w = doRequest(r, http.MethodPut, "/settings", adminToken, body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 updating settings, got %d", w.Code)
	}
	json.NewDecoder(w.Body).Decode(&settings)
	if settings[repo.SettingStoreName] != "Amari Cafe" {
		t.Errorf("expected updated store name, got %q", settings[repo.SettingStoreName])
	}

	if w := doRequest(r, http.MethodPut, "/settings", adminToken, map[string]string{"theme": "dark"}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown setting key, got %d", w.Code)
	}
}

func TestAuditLog(t *testing.T) {
	t.Cleanup(productRepo.Clear)
	r := api.NewRouter()

	createProduct(t, r, handlers.ProductRequest{Name: "Bagel", Price: 70.0, Stock: 6, SKU: "FD-300"})

	w := doRequest(r, http.MethodGet, "/audit", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for audit log, got %d", w.Code)
	}
	var result handlers.AuditSearchResult
	json.NewDecoder(w.Body).Decode(&result)
	if result.Meta.TotalCount == 0 {
		t.Fatal("expected audit entries after creating a product")
	}
	latest := result.Data[0]
	if latest.Action != "product.create" {
		t.Errorf("expected newest entry to be product.create, got %q", latest.Action)
	}
	if latest.Actor != "manager" {
		t.Errorf("expected actor 'manager', got %q", latest.Actor)
	}
}

func TestUserAdministration(t *testing.T) {
	r := api.NewRouter()

	w := doRequest(r, http.MethodPost, "/admin/users", adminToken, handlers.RegisterAsAdminRequest{
		Username: "newmanager", Password: "secret9", Name: "New Manager", Role: models.RoleManager,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating user, got %d: %s", w.Code, w.Body.String())
	}
	var created handlers.UserResponse
	json.NewDecoder(w.Body).Decode(&created)
	if created.Role != models.RoleManager {
		t.Errorf("expected role manager, got %q", created.Role)
	}

	if w := doRequest(r, http.MethodPost, "/admin/users", adminToken, handlers.RegisterAsAdminRequest{
		Username: "oddball", Password: "secret9", Role: "owner",
	}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown role, got %d", w.Code)
	}

	if w := doRequest(r, http.MethodPost, "/admin/users", managerToken, handlers.RegisterAsAdminRequest{
		Username: "sneaky", Password: "secret9", Role: models.RoleAdmin,
	}); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for manager creating users, got %d", w.Code)
	}

	w = doRequest(r, http.MethodGet, "/admin/users", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 listing users, got %d", w.Code)
	}
	var users []handlers.UserResponse
	json.NewDecoder(w.Body).Decode(&users)
	found := false
	for _, u := range users {
		if u.Username == "newmanager" {
			found = true
		}
	}
	if !found {
		t.Error("expected newmanager in the user list")
	}

	if w := doRequest(r, http.MethodDelete, fmt.Sprintf("/admin/users/%d", created.Id), adminToken, nil); w.Code != http.StatusNoContent {
		t.Errorf("expected 204 deleting user, got %d", w.Code)
	}
}
