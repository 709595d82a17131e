package bru_test

import (
	"fmt"

	"github.com/bru-go/bru"
)

func ExampleCompile() {
	re, err := bru.Compile(`\d+`)
	if err != nil {
		panic(err)
	}
	fmt.Println(re.FindString("hello 123 world"))
	// Output: 123
}

func ExampleRegex_findAllString() {
	re := bru.MustCompile(`[0-9]+`)
	fmt.Println(re.FindAllString("abc 12 34 d", -1))
	// Output: [12 34]
}

func ExampleRegex_findStringSubmatch() {
	re := bru.MustCompile(`(\w+)@(\w+)\.(\w+)`)
	m := re.FindStringSubmatch("user@example.com")
	fmt.Println(m[0])
	fmt.Println(m[1])
	fmt.Println(m[2])
	fmt.Println(m[3])
	// Output:
	// user@example.com
	// user
	// example
	// com
}

func ExampleRegex_match() {
	re := bru.MustCompile(`^[a-z]+$`)
	fmt.Println(re.MatchString("hello"))
	fmt.Println(re.MatchString("Hello"))
	// Output:
	// true
	// false
}
