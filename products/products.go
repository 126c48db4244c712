package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"kirana/db"
	"kirana/models"
	"kirana/mq"
	"kirana/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var productUploadPath = "./static/productpic"

var validCategories = map[string]bool{
	"electronics": true,
	"clothing":    true,
	"books":       true,
	"accessories": true,
	"beauty":      true,
	"other":       true,
}

// GetProducts lists the whole catalog.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.ProductCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve products")
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading products")
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	utils.RespondWithJSON(w, http.StatusOK, products)
}

// GetProduct fetches one product by id.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": ps.ByName("id")}).Decode(&product)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product Not Found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// GetProductBySlug fetches one product by its unique slug.
func GetProductBySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"slug": ps.ByName("slug")}).Decode(&product)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product Not Found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// GetCategories returns the distinct categories present in the catalog.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	categories, err := db.ProductCollection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve categories")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, categories)
}

// CreateProduct handles the multipart create-with-image upload.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form: "+err.Error())
		return
	}

	name := r.FormValue("name")
	if len(name) == 0 || len(name) > 100 {
		utils.RespondWithError(w, http.StatusBadRequest, "Name must be between 1 and 100 characters")
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid price value. Must be a non-negative number")
		return
	}

	stock, err := strconv.Atoi(r.FormValue("countInStock"))
	if err != nil || stock < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid stock value. Must be a non-negative integer")
		return
	}

	category := r.FormValue("category")
	if !validCategories[category] {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid category")
		return
	}

	slug := r.FormValue("slug")
	if slug == "" {
		slug = utils.Slugify(name)
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image file missing")
		return
	}
	defer file.Close()

	filename, err := utils.SaveUpload(file, header, productUploadPath)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image upload failed: "+err.Error())
		return
	}
	if err := utils.CreateThumb(filename, productUploadPath, 300); err != nil {
		log.Printf("thumbnail for %s: %v", filename, err)
	}

	product := models.Product{
		ProductID:    "p" + utils.GenerateRandomString(12),
		Name:         name,
		Slug:         slug,
		Image:        "/static/productpic/" + filename,
		Brand:        r.FormValue("brand"),
		Price:        price,
		CountInStock: stock,
		Description:  r.FormValue("description"),
		Category:     category,
		Reviews:      []models.Review{},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Slug already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	m := models.Index{EntityType: "product", EntityId: product.ProductID}
	go mq.Emit(ctx, "product-created", m)

	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct applies an admin edit to the mutable catalog fields.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name         *string  `json:"name"`
		Brand        *string  `json:"brand"`
		Price        *float64 `json:"price"`
		CountInStock *int     `json:"countInStock"`
		Description  *string  `json:"description"`
		Category     *string  `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Brand != nil {
		set["brand"] = *input.Brand
	}
	if input.Price != nil {
		if *input.Price < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Price must be non-negative")
			return
		}
		set["price"] = *input.Price
	}
	if input.CountInStock != nil {
		if *input.CountInStock < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Stock must be non-negative")
			return
		}
		set["count_in_stock"] = *input.CountInStock
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.Category != nil {
		if !validCategories[*input.Category] {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid category")
			return
		}
		set["category"] = *input.Category
	}

	res, err := db.ProductCollection.UpdateOne(ctx, bson.M{"productid": ps.ByName("id")}, bson.M{"$set": set})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product Not Found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Product Updated"})
}

// DeleteProduct removes a product. Admin only.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("id")

	res, err := db.ProductCollection.DeleteOne(ctx, bson.M{"productid": productID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product Not Found")
		return
	}

	m := models.Index{EntityType: "product", EntityId: productID}
	go mq.Emit(ctx, "product-deleted", m)

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Product Deleted Successfully"})
}
