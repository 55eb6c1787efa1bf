package catalog

// DefaultSeed returns the starter catalog installed on first run.
func DefaultSeed() []Product {
	return []Product{
		{
			ID:          1,
			Name:        "Crest Hoodie",
			Description: "Midweight cotton hoodie with embroidered crest.",
			Color:       "Black",
			Price:       45,
			Image:       "/assets/products/crest-hoodie.jpg",
		},
		{
			ID:          2,
			Name:        "Vital Seamless Leggings",
			Description: "Sculpting seamless leggings with a high waistband.",
			Color:       "Navy",
			Price:       50,
			Image:       "/assets/products/vital-leggings.jpg",
		},
		{
			ID:          3,
			Name:        "Arrival T-Shirt",
			Description: "Lightweight training tee with sweat-wicking fabric.",
			Color:       "White",
			Price:       22,
			Image:       "/assets/products/arrival-tee.jpg",
		},
		{
			ID:          4,
			Name:        "Training Sports Bra",
			Description: "Medium support bra with removable padding.",
			Color:       "Grey",
			Price:       30,
			Image:       "/assets/products/training-bra.jpg",
		},
		{
			ID:          5,
			Name:        "Apex 5\" Shorts",
			Description: "Stretch shorts with zip pocket and liner.",
			Color:       "Black",
			Price:       35,
			Image:       "/assets/products/apex-shorts.jpg",
		},
		{
			ID:          6,
			Name:        "Sharkhead Cap",
			Description: "Adjustable cotton cap with tonal logo.",
			Color:       "Green",
			Price:       18,
			Image:       "/assets/products/sharkhead-cap.jpg",
		},
	}
}
