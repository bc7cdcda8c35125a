package ingest

// Parameterized merge statements. Node merges are keyed on the entity's key
// property and overwrite the full attribute set, so re-running a file is
// idempotent for node properties. Relationship merges MATCH both endpoints
// first: a missing endpoint makes the statement return nothing, which the
// loader reports as a missing-target outcome rather than an error.
const (
	cypherMergeProduct = "MERGE (p:Product {productID: $productID}) " +
		"SET p = $props RETURN p.productID AS id"

	cypherMergeCategory = "MERGE (c:Category {categoryID: $categoryID}) " +
		"SET c = $props RETURN c.categoryID AS id"

	cypherMergeCustomer = "MERGE (c:ECCustomer {customerID: $customerID}) " +
		"SET c = $props RETURN c.customerID AS id"

	cypherMergeOrder = "MERGE (o:Order {orderID: $orderID}) " +
		"SET o = $props RETURN o.orderID AS id"

	cypherMergeSupplier = "MERGE (s:Supplier {supplierID: $supplierID}) " +
		"SET s = $props RETURN s.supplierID AS id"

	cypherMergeReview = "MERGE (rev:Review {reviewID: $reviewID}) " +
		"SET rev = $props RETURN rev.reviewID AS id"

	cypherMergeBelongsTo = "MATCH (p:Product {productID: $productID}) " +
		"MATCH (c:Category {categoryID: $categoryID}) " +
		"MERGE (p)-[r:BELONGS_TO]->(c) " +
		"RETURN type(r) AS rel_type"

	cypherMergeSupplies = "MATCH (s:Supplier {supplierID: $supplierID}) " +
		"MATCH (p:Product {productID: $productID}) " +
		"MERGE (s)-[r:SUPPLIES]->(p) " +
		"RETURN type(r) AS rel_type"

	cypherMergePlaced = "MATCH (o:Order {orderID: $orderID}) " +
		"MATCH (c:ECCustomer {customerID: $customerID}) " +
		"MERGE (c)-[r:PLACED]->(o) " +
		"ON CREATE SET r.date = $orderDate " +
		"RETURN type(r) AS rel_type"

	// CONTAINS is keyed on both endpoints plus orderItemID so one order can
	// contain the same product on distinct item lines without duplicating
	// edges across re-runs.
	cypherMergeContains = "MATCH (o:Order {orderID: $orderID}) " +
		"MATCH (p:Product {productID: $productID}) " +
		"MERGE (o)-[r:CONTAINS {orderItemID: $orderItemID}]->(p) " +
		"SET r.quantity = $quantity, r.unitPrice = $unitPrice, r.totalItemPrice = $totalItemPrice " +
		"RETURN type(r) AS rel_type"

	cypherMergeWroteReview = "MATCH (c:ECCustomer {customerID: $customerID}) " +
		"MATCH (rev:Review {reviewID: $reviewID}) " +
		"MERGE (c)-[r:WROTE_REVIEW]->(rev) " +
		"RETURN type(r) AS rel_type"

	cypherMergeHasReview = "MATCH (p:Product {productID: $productID}) " +
		"MATCH (rev:Review {reviewID: $reviewID}) " +
		"MERGE (p)-[r:HAS_REVIEW]->(rev) " +
		"RETURN type(r) AS rel_type"
)
