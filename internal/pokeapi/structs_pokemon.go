package pokeapi

type NamedAPIResource struct {
	// The name of the referenced resource.
	Name string `json:"name"`
	// The URL of the referenced resource.
	URL string `json:"url"`
}

type NamedAPIResourceList struct {
	// The total number of resources available from this API.
	Count int `json:"count"`
	// The URL for the next page in the list.
	Next *string `json:"next"`
	// The URL for the previous page in the list.
	Previous *string `json:"previous"`
	// A list of named API resources.
	Results []NamedAPIResource `json:"results"`
}

type Pokemon struct {
	// The identifier for this resource.
	ID int `json:"id"`
	// The name for this resource.
	Name string `json:"name"`
	// The base experience gained for defeating this Pokémon. Null for some forms.
	BaseExperience *int `json:"base_experience"`
	// The height of this Pokémon in decimetres.
	Height int `json:"height"`
	// The weight of this Pokémon in hectograms.
	Weight int `json:"weight"`
	// A set of sprites used to depict this Pokémon in the game.
	Sprites PokemonSprites `json:"sprites"`
	// A list of details showing types this Pokémon has.
	Types []PokemonType `json:"types"`
}

type PokemonSprites struct {
	// The default depiction of this Pokémon from the front in battle.
	FrontDefault *string `json:"front_default"`
	// Artwork sets outside of the games.
	Other OtherSprites `json:"other"`
}

type OtherSprites struct {
	// The official artwork of this Pokémon.
	OfficialArtwork ArtworkSprites `json:"official-artwork"`
}

type ArtworkSprites struct {
	FrontDefault *string `json:"front_default"`
}

type PokemonType struct {
	// The order the Pokémon's types are listed in.
	Slot int `json:"slot"`
	// The type the referenced Pokémon has.
	Type NamedAPIResource `json:"type"`
}
