package game

import "fmt"

type messageKey string

const (
	msgInventoryFull   messageKey = "inventory_full"
	msgItemAdded       messageKey = "item_added"
	msgPickedUp        messageKey = "picked_up"
	msgThirstFull      messageKey = "thirst_full"
	msgConsumed        messageKey = "consumed"
	msgNotHeld         messageKey = "not_held"
	msgNotEdible       messageKey = "not_edible"
	msgCooked          messageKey = "cooked"
	msgNothingToCook   messageKey = "nothing_to_cook"
	msgFilled          messageKey = "filled"
	msgNothingToFill   messageKey = "nothing_to_fill"
	msgCrafted         messageKey = "crafted"
	msgMissingMaterial messageKey = "missing_material"
	msgUnknownRecipe   messageKey = "unknown_recipe"
	msgOutOfArrows     messageKey = "out_of_arrows"
	msgNoBow           messageKey = "no_bow"
	msgArrowRecovered  messageKey = "arrow_recovered"
	msgAnimalKilled    messageKey = "animal_killed"
	msgTorchRelit      messageKey = "torch_relit"
	msgTorchOut        messageKey = "torch_out"
	msgNoTorch         messageKey = "no_torch"
	msgCampfireOut     messageKey = "campfire_out"
	msgNoCampfire      messageKey = "no_campfire"
	msgPlaced          messageKey = "placed"
	msgShelterBuilt    messageKey = "shelter_built"
	msgShelterUpgraded messageKey = "shelter_upgraded"
	msgShelterMaxed    messageKey = "shelter_maxed"
	msgNeedShelter     messageKey = "need_shelter"
	msgWokeUp          messageKey = "woke_up"
	msgNewDay          messageKey = "new_day"
	msgWeather         messageKey = "weather"
	msgDied            messageKey = "died"
)

var messageCatalog = map[string]map[messageKey]string{
	"en": {
		msgInventoryFull:   "Inventory full",
		msgItemAdded:       "+%d %s",
		msgPickedUp:        "Picked up %d %s",
		msgThirstFull:      "You are not thirsty",
		msgConsumed:        "Consumed %s",
		msgNotHeld:         "You have no %s",
		msgNotEdible:       "%s cannot be consumed",
		msgCooked:          "Cooked %s",
		msgNothingToCook:   "Nothing to cook",
		msgFilled:          "Filled %d canteen(s)",
		msgNothingToFill:   "No empty canteen to fill",
		msgCrafted:         "Crafted %s",
		msgMissingMaterial: "Not enough materials for %s",
		msgUnknownRecipe:   "Unknown recipe: %s",
		msgOutOfArrows:     "Out of arrows",
		msgNoBow:           "You need a bow",
		msgArrowRecovered:  "Recovered an arrow",
		msgAnimalKilled:    "%s down",
		msgTorchRelit:      "Lit a fresh torch",
		msgTorchOut:        "Your torch burned out",
		msgNoTorch:         "You have no torch",
		msgCampfireOut:     "A campfire burned out",
		msgNoCampfire:      "You have no campfire to place",
		msgPlaced:          "Placed %s",
		msgShelterBuilt:    "Built a %s",
		msgShelterUpgraded: "Shelter upgraded to %s",
		msgShelterMaxed:    "Shelter is already a house",
		msgNeedShelter:     "You need a shelter nearby to sleep",
		msgWokeUp:          "You wake up rested",
		msgNewDay:          "Day %d begins",
		msgWeather:         "The weather turns %s",
		msgDied:            "You died",
	},
	"tr": {
		msgInventoryFull:   "Envanter dolu",
		msgItemAdded:       "+%d %s",
		msgPickedUp:        "%d %s alındı",
		msgThirstFull:      "Susamadın",
		msgConsumed:        "%s tüketildi",
		msgNotHeld:         "Hiç %s yok",
		msgNotEdible:       "%s tüketilemez",
		msgCooked:          "%s pişirildi",
		msgNothingToCook:   "Pişirecek bir şey yok",
		msgFilled:          "%d matara dolduruldu",
		msgNothingToFill:   "Doldurulacak boş matara yok",
		msgCrafted:         "%s üretildi",
		msgMissingMaterial: "%s için yeterli malzeme yok",
		msgUnknownRecipe:   "Bilinmeyen tarif: %s",
		msgOutOfArrows:     "Ok kalmadı",
		msgNoBow:           "Bir yaya ihtiyacın var",
		msgArrowRecovered:  "Bir ok geri alındı",
		msgAnimalKilled:    "%s avlandı",
		msgTorchRelit:      "Yeni bir meşale yakıldı",
		msgTorchOut:        "Meşalen söndü",
		msgNoTorch:         "Meşalen yok",
		msgCampfireOut:     "Bir kamp ateşi söndü",
		msgNoCampfire:      "Yerleştirecek kamp ateşin yok",
		msgPlaced:          "%s yerleştirildi",
		msgShelterBuilt:    "%s inşa edildi",
		msgShelterUpgraded: "Barınak %s seviyesine yükseltildi",
		msgShelterMaxed:    "Barınak zaten ev",
		msgNeedShelter:     "Uyumak için yakında bir barınak gerekli",
		msgWokeUp:          "Dinlenmiş olarak uyandın",
		msgNewDay:          "%d. gün başlıyor",
		msgWeather:         "Hava %s oldu",
		msgDied:            "Öldün",
	},
}

var weatherNames = map[string]map[Weather]string{
	"en": {WeatherSunny: "sunny", WeatherRainy: "rainy", WeatherSnowy: "snowy"},
	"tr": {WeatherSunny: "güneşli", WeatherRainy: "yağmurlu", WeatherSnowy: "karlı"},
}

func validLanguage(lang string) bool {
	_, ok := messageCatalog[lang]
	return ok
}

// Languages lists the supported UI languages.
func Languages() []string {
	return []string{"en", "tr"}
}

func localize(lang string, key messageKey, args ...any) string {
	table, ok := messageCatalog[lang]
	if !ok {
		table = messageCatalog["en"]
	}
	format, ok := table[key]
	if !ok {
		format = messageCatalog["en"][key]
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func localizeWeather(lang string, w Weather) string {
	if names, ok := weatherNames[lang]; ok {
		if name, ok := names[w]; ok {
			return name
		}
	}
	return string(w)
}
