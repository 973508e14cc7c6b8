package repository

import (
	"testing"

	usersrepo "carrental/internal/users/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPopulateUserPipeline(t *testing.T) {
	userID := primitive.NewObjectID()
	pipeline := populateUserPipeline(userID)

	stages := make([]string, 0, len(pipeline))
	for _, stage := range pipeline {
		stages = append(stages, stage[0].Key)
	}
	want := []string{"$match", "$sort", "$lookup", "$unwind", "$project"}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Fatalf("stages = %v, want %v", stages, want)
		}
	}

	match := pipeline[0][0].Value.(bson.M)
	if match["userInfo"] != userID {
		t.Errorf("match filter = %v", match)
	}

	lookup := pipeline[2][0].Value.(bson.M)
	if lookup["from"] != usersrepo.CollectionName || lookup["as"] != "userInfo" {
		t.Errorf("lookup = %v", lookup)
	}

	unwind := pipeline[3][0].Value.(bson.M)
	if unwind["preserveNullAndEmptyArrays"] != true {
		t.Error("bookings whose owner is gone must still be returned")
	}

	project := pipeline[4][0].Value.(bson.M)
	if project["userInfo.otp"] != 0 {
		t.Error("expanded user must not carry the OTP")
	}
}
