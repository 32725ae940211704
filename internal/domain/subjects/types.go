package subjects

// Species define las especies soportadas.
// @Enum dog, cat
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// DogBreed define las razas de perro principales.
type DogBreed string

const (
	BreedLabrador        DogBreed = "labrador"
	BreedGoldenRetriever DogBreed = "golden_retriever"
	BreedGermanShepherd  DogBreed = "german_shepherd"
	BreedBulldog         DogBreed = "bulldog"
	BreedPoodle          DogBreed = "poodle"
	BreedChihuahua       DogBreed = "chihuahua"
	BreedBeagle          DogBreed = "beagle"
	BreedDogOther        DogBreed = "other"
)

// CatBreed define las razas de gato principales.
type CatBreed string

const (
	BreedPersian   CatBreed = "persian"
	BreedSiamese   CatBreed = "siamese"
	BreedMaineCoon CatBreed = "maine_coon"
	BreedBengal    CatBreed = "bengal"
	BreedSphynx    CatBreed = "sphynx"
	BreedCommon    CatBreed = "common"
	BreedCatOther  CatBreed = "other"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)
