package main

import (
	"time"

	"github.com/shopspring/decimal"
)

type seedBook struct {
	ExternalID  int
	Title       string
	Author      string
	Genre       string
	Price       string
	PublishDate string
	Description string
}

// Reference catalog. 105 is left free for the round-trip scenario.
var seedAuthors = []string{
	"Gambardella, Matthew",
	"Ralls, Kim",
	"Corets, Eva",
	"Randall, Cynthia",
	"Thurman, Paula",
	"Knorr, Stefan",
	"Kress, Peter",
	"O'Brien, Tim",
	"Galos, Mike",
}

var seedBooks = []seedBook{
	{101, "XML Developer's Guide", "Gambardella, Matthew", "Computer", "44.95", "2000-10-01", "An in-depth look at creating applications with XML."},
	{102, "Midnight Rain", "Ralls, Kim", "Fantasy", "5.95", "2000-12-16", "A former architect battles corporate zombies and an evil sorceress to become queen of the world."},
	{103, "Maeve Ascendant", "Corets, Eva", "Fantasy", "5.95", "2000-11-17", "After the collapse of a nanotechnology society in England, the young survivors lay the foundation for a new society."},
	{104, "Oberon's Legacy", "Corets, Eva", "Fantasy", "5.95", "2001-03-10", "In post-apocalypse England, the mysterious agent known only as Oberon helps to create a new life for the inhabitants of London."},
	{106, "Lover Birds", "Randall, Cynthia", "Romance", "4.95", "2000-09-02", "When Carla meets Paul at an ornithology conference, tempers fly as feathers get ruffled."},
	{107, "Splish Splash", "Thurman, Paula", "Romance", "4.95", "2000-11-02", "A deep sea diver finds true love twenty thousand leagues beneath the sea."},
	{108, "Creepy Crawlies", "Knorr, Stefan", "Horror", "4.95", "2000-12-06", "An anthology of horror stories about roaches, centipedes and scorpions."},
	{109, "Paradox Lost", "Kress, Peter", "Science Fiction", "6.95", "2000-11-02", "After an inadvertant trip through a Heisenberg Uncertainty Device, James Salway discovers the problems of being quantum."},
	{110, "Microsoft .NET: The Programming Bible", "O'Brien, Tim", "Computer", "36.95", "2000-12-09", "Microsoft's .NET initiative is explored in detail in this deep programmer's reference."},
	{111, "MSXML3: A Comprehensive Guide", "O'Brien, Tim", "Computer", "36.95", "2000-12-01", "The Microsoft MSXML3 parser is covered in detail, with attention to XML DOM interfaces and XSLT processing."},
	{112, "Visual Studio 7: A Comprehensive Guide", "Galos, Mike", "Computer", "49.95", "2001-04-16", "Microsoft Visual Studio 7 is explored in depth, looking at how Visual Basic and Visual C++ can be integrated into a comprehensive development environment."},
}

func (b seedBook) price() (decimal.Decimal, error) {
	return decimal.NewFromString(b.Price)
}

func (b seedBook) publishDate() (time.Time, error) {
	return time.Parse("2006-01-02", b.PublishDate)
}
