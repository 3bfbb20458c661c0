package rutext

import (
	"strconv"
	"strings"
)

var (
	unitWords         = [10]string{"", "один", "два", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять"}
	unitWordsFeminine = [10]string{"", "одна", "две", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять"}
	teenWords         = [10]string{"десять", "одиннадцать", "двенадцать", "тринадцать", "четырнадцать", "пятнадцать", "шестнадцать", "семнадцать", "восемнадцать", "девятнадцать"}
	tenWords          = [10]string{"", "", "двадцать", "тридцать", "сорок", "пятьдесят", "шестьдесят", "семьдесят", "восемьдесят", "девяносто"}
	hundredWords      = [10]string{"", "сто", "двести", "триста", "четыреста", "пятьсот", "шестьсот", "семьсот", "восемьсот", "девятьсот"}
)

const wordsLimit = 1_000_000

// NumberToWords записывает целое число прописью.
// Значения от миллиона и выше возвращаются цифрами.
func NumberToWords(n int) string {
	if n <= -wordsLimit {
		return strconv.Itoa(n)
	}
	if n < 0 {
		return "минус " + NumberToWords(-n)
	}
	if n == 0 {
		return "ноль"
	}
	if n >= wordsLimit {
		return strconv.Itoa(n)
	}

	words := make([]string, 0, 8)
	if thousands := n / 1000; thousands > 0 {
		words = appendTriad(words, thousands, unitWordsFeminine)
		words = append(words, thousandWord(thousands))
	}
	if rest := n % 1000; rest > 0 {
		words = appendTriad(words, rest, unitWords)
	}
	return strings.Join(words, " ")
}

func appendTriad(words []string, n int, units [10]string) []string {
	hundreds, tens, ones := n/100, (n%100)/10, n%10
	if hundreds > 0 {
		words = append(words, hundredWords[hundreds])
	}
	if tens == 1 {
		return append(words, teenWords[ones])
	}
	if tens > 0 {
		words = append(words, tenWords[tens])
	}
	if ones > 0 {
		words = append(words, units[ones])
	}
	return words
}

func thousandWord(thousands int) string {
	if rem := thousands % 100; rem >= 11 && rem <= 14 {
		return "тысяч"
	}
	switch last := thousands % 10; {
	case last == 1:
		return "тысяча"
	case last >= 2 && last <= 4:
		return "тысячи"
	default:
		return "тысяч"
	}
}
