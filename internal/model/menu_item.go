package model

// MenuItem is an entry of the static menu catalog.  The catalog is
// immutable reference data loaded once at startup; orders copy the
// fields they need instead of referencing catalog entries.
//
// Fields:
//  ID          – catalog identifier (string, as printed on QR menus).
//  Name        – dish name.
//  Description – short dish description.
//  Price       – price in euros.
//  Image       – optional image path served by the frontend.
type MenuItem struct {
    ID          string  `json:"id"`
    Name        string  `json:"name"`
    Description string  `json:"description"`
    Price       float64 `json:"price"`
    Image       string  `json:"image,omitempty"`
}
